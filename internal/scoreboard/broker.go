package scoreboard

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Broker рассылает сигнал "таблица лидеров изменилась" всем подключенным зрителям.
//
// Каждый зритель держит собственную подписку с буфером на один сигнал.
// Если зритель еще не обработал предыдущий сигнал, новый сливается с ним:
// зритель все равно перечитает таблицу целиком, поэтому ни одно изменение не теряется.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]*Subscription
	closed bool
}

// Subscription - подписка одного зрителя
type Subscription struct {
	id     string
	ch     chan struct{}
	broker *Broker
	once   sync.Once
}

// NewBroker создает новый брокер
func NewBroker() *Broker {
	return &Broker{subs: make(map[string]*Subscription)}
}

// Subscribe регистрирует нового зрителя. Вызывающий обязан вызвать Close по отключении.
func (b *Broker) Subscribe() *Subscription {
	sub := &Subscription{
		id:     uuid.New().String(),
		ch:     make(chan struct{}, 1),
		broker: b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	b.subs[sub.id] = sub
	log.Printf("[Scoreboard] Подписка %s создана, зрителей: %d", sub.id, len(b.subs))
	return sub
}

// Notify будит всех текущих зрителей. Никогда не блокируется.
// Без подписчиков ничего не делает и ничего не накапливает.
func (b *Broker) Notify() {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		select {
		case sub.ch <- struct{}{}:
		default:
			// сигнал уже ждет обработки
		}
	}
}

// SubscriberCount возвращает количество активных подписок
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close закрывает все подписки; используется при остановке сервера
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		sub.once.Do(func() { close(sub.ch) })
		delete(b.subs, id)
	}
	log.Println("[Scoreboard] Брокер остановлен")
}

// ID возвращает идентификатор подписки
func (s *Subscription) ID() string {
	return s.id
}

// C возвращает канал сигналов. Канал закрывается при остановке брокера.
func (s *Subscription) C() <-chan struct{} {
	return s.ch
}

// Close удаляет подписку из рассылки. Повторный вызов безопасен.
func (s *Subscription) Close() {
	b := s.broker
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[s.id]; !ok {
		return
	}
	delete(b.subs, s.id)
	s.once.Do(func() { close(s.ch) })
	log.Printf("[Scoreboard] Подписка %s закрыта, зрителей: %d", s.id, len(b.subs))
}
