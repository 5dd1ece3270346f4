package scoreboard

import (
	"context"
	"time"
)

// DefaultKeepalive - интервал отправки keepalive при отсутствии обновлений
const DefaultKeepalive = 30 * time.Second

// Watch реализует цикл одного зрителя независимо от транспорта (SSE, WebSocket).
//
// Сразу после подключения вызывается push с актуальной таблицей. Затем цикл ждет:
// сигнал брокера (снова push), истечение keepalive без сигналов (keepalive)
// или отмену ctx (отключение клиента). Ошибка push или keepalive означает,
// что клиент недоступен, и завершает цикл. Подписка освобождается при любом выходе.
func (b *Broker) Watch(ctx context.Context, interval time.Duration, push func() error, keepalive func() error) error {
	if interval <= 0 {
		interval = DefaultKeepalive
	}

	sub := b.Subscribe()
	defer sub.Close()

	if err := push(); err != nil {
		return err
	}

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.C():
			if !ok {
				return nil
			}
			if err := push(); err != nil {
				return err
			}
			resetTimer(timer, interval)
		case <-timer.C:
			if err := keepalive(); err != nil {
				return err
			}
			timer.Reset(interval)
		}
	}
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
