package service

import "github.com/yourusername/quiz-game-api/internal/domain/entity"

type seedQuestion struct {
	en, fr           string
	answer           string
	greenEN, greenFR string
	redEN, redFR     string
	explainEN        string
	explainFR        string
}

var defaultQuestionSet = []seedQuestion{
	{"What does API stand for?", "Que signifie API ?", entity.AnswerGreen,
		"Application Programming Interface", "Interface de programmation d'application",
		"Advanced Program Integration", "Intégration de programme avancée",
		"An API is the contract that lets two programs talk to each other.",
		"Une API est le contrat qui permet à deux programmes de communiquer."},
	{"Which HTTP method reads a resource without changing it?", "Quelle méthode HTTP lit une ressource sans la modifier ?", entity.AnswerRed,
		"POST", "POST",
		"GET", "GET",
		"GET is safe and idempotent: it only retrieves data.",
		"GET est sûre et idempotente : elle ne fait que récupérer des données."},
	{"Which status code means the request succeeded?", "Quel code de statut signifie que la requête a réussi ?", entity.AnswerGreen,
		"200", "200",
		"500", "500",
		"200 OK is the standard success response.",
		"200 OK est la réponse standard de succès."},
	{"What does REST stand for?", "Que signifie REST ?", entity.AnswerGreen,
		"Representational State Transfer", "Transfert d'état représentationnel",
		"Remote Execution Service Toolkit", "Boîte à outils d'exécution à distance",
		"REST is an architectural style built on resources and HTTP verbs.",
		"REST est un style d'architecture fondé sur les ressources et les verbes HTTP."},
	{"What is an API gateway?", "Qu'est-ce qu'une passerelle API ?", entity.AnswerRed,
		"A relational database", "Une base de données relationnelle",
		"A single entry point that routes API calls", "Un point d'entrée unique qui route les appels API",
		"A gateway receives requests and forwards them to the right backend service.",
		"Une passerelle reçoit les requêtes et les transmet au bon service."},
	{"What does JSON stand for?", "Que signifie JSON ?", entity.AnswerGreen,
		"JavaScript Object Notation", "JavaScript Object Notation",
		"Java Serialized Object Network", "Java Serialized Object Network",
		"JSON is a lightweight text format for structured data.",
		"JSON est un format texte léger pour les données structurées."},
	{"Which method is usually used to create a resource?", "Quelle méthode sert généralement à créer une ressource ?", entity.AnswerGreen,
		"POST", "POST",
		"HEAD", "HEAD",
		"POST submits a new entity to the collection.",
		"POST soumet une nouvelle entité à la collection."},
	{"What does CORS control?", "Que contrôle CORS ?", entity.AnswerRed,
		"Database replication", "La réplication de base de données",
		"Cross-origin requests from browsers", "Les requêtes inter-origines des navigateurs",
		"CORS headers tell browsers which origins may call an API.",
		"Les en-têtes CORS indiquent aux navigateurs quelles origines peuvent appeler une API."},
	{"What is OAuth mainly used for?", "À quoi sert principalement OAuth ?", entity.AnswerGreen,
		"Delegated authorization", "L'autorisation déléguée",
		"Disk encryption", "Le chiffrement de disque",
		"OAuth lets a user grant an app limited access without sharing a password.",
		"OAuth permet d'accorder un accès limité sans partager de mot de passe."},
	{"Which status code means 'Not Found'?", "Quel code de statut signifie « Non trouvé » ?", entity.AnswerRed,
		"401", "401",
		"404", "404",
		"404 means the server cannot find the requested resource.",
		"404 signifie que le serveur ne trouve pas la ressource demandée."},
	{"What is GraphQL?", "Qu'est-ce que GraphQL ?", entity.AnswerGreen,
		"A query language for APIs", "Un langage de requête pour les API",
		"A graph database engine", "Un moteur de base de données orientée graphe",
		"GraphQL lets clients ask for exactly the fields they need.",
		"GraphQL permet aux clients de demander exactement les champs nécessaires."},
	{"What does HTTP stand for?", "Que signifie HTTP ?", entity.AnswerGreen,
		"HyperText Transfer Protocol", "Protocole de transfert hypertexte",
		"High Throughput Transport Protocol", "Protocole de transport à haut débit",
		"HTTP is the application protocol of the web.",
		"HTTP est le protocole applicatif du web."},
	{"What is a webhook?", "Qu'est-ce qu'un webhook ?", entity.AnswerRed,
		"A type of firewall", "Un type de pare-feu",
		"An HTTP callback fired when an event happens", "Un rappel HTTP déclenché lors d'un événement",
		"Webhooks push event notifications to a URL you register.",
		"Les webhooks envoient des notifications d'événements à une URL enregistrée."},
	{"What does TLS protect?", "Que protège TLS ?", entity.AnswerGreen,
		"Data in transit", "Les données en transit",
		"Data on backup tapes", "Les données sur bandes de sauvegarde",
		"TLS encrypts the connection between client and server.",
		"TLS chiffre la connexion entre le client et le serveur."},
	{"What is rate limiting?", "Qu'est-ce que la limitation de débit ?", entity.AnswerGreen,
		"Capping how many requests a client may send", "Plafonner le nombre de requêtes d'un client",
		"Compressing responses", "Compresser les réponses",
		"Rate limits protect an API from abuse and overload.",
		"Les limites de débit protègent une API contre les abus et la surcharge."},
	{"Which method removes a resource?", "Quelle méthode supprime une ressource ?", entity.AnswerRed,
		"REMOVE", "REMOVE",
		"DELETE", "DELETE",
		"DELETE is the standard HTTP verb for removal; REMOVE does not exist.",
		"DELETE est le verbe HTTP standard de suppression ; REMOVE n'existe pas."},
	{"What is a JWT?", "Qu'est-ce qu'un JWT ?", entity.AnswerGreen,
		"A signed JSON Web Token", "Un jeton web JSON signé",
		"A Java web toolkit", "Une boîte à outils web Java",
		"A JWT carries signed claims, often used as a bearer token.",
		"Un JWT transporte des revendications signées, souvent utilisé comme jeton porteur."},
	{"What is API versioning for?", "À quoi sert le versionnage d'API ?", entity.AnswerGreen,
		"Evolving an API without breaking clients", "Faire évoluer une API sans casser les clients",
		"Encrypting payloads", "Chiffrer les données échangées",
		"Versions let old clients keep working while the API changes.",
		"Les versions permettent aux anciens clients de continuer à fonctionner."},
}

// DefaultQuestions возвращает встроенный набор двуязычных вопросов для первого запуска
func DefaultQuestions() []entity.Question {
	questions := make([]entity.Question, 0, len(defaultQuestionSet))
	for _, sq := range defaultQuestionSet {
		explainEN, explainFR := sq.explainEN, sq.explainFR
		q := entity.Question{
			QuestionEN:    sq.en,
			QuestionFR:    sq.fr,
			CorrectAnswer: sq.answer,
			GreenLabelEN:  sq.greenEN,
			GreenLabelFR:  sq.greenFR,
			RedLabelEN:    sq.redEN,
			RedLabelFR:    sq.redFR,
			ExplanationEN: &explainEN,
			ExplanationFR: &explainFR,
			IsActive:      true,
		}
		q.ApplyLabelDefaults()
		questions = append(questions, q)
	}
	return questions
}
