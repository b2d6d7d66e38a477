// Package httpapi exposes the TaskFlow JSON API.
//
// Routes:
//
//	POST   /api/cadastro       register an identity
//	POST   /api/login          exchange credentials for a bearer token
//	GET    /api/tarefas        list the caller's tasks
//	POST   /api/tarefas        create a task
//	PUT    /api/tarefas/{id}   set a task's status
//	DELETE /api/tarefas/{id}   delete a task
//	GET    /up                 liveness
//
// Error bodies are {"erro": <localized message>, "codigo": <code>}.
package httpapi
