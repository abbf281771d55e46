package ports

// Logger é o log estruturado usado por serviços, handlers e infraestrutura.
// args são pares chave/valor: logger.Info("vote cast", "work_id", id).
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	// With retorna um logger que inclui args em todas as mensagens
	With(args ...any) Logger
}
