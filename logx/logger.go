package logx

type Data struct {
	Key   string
	Value interface{}
}

type Logger interface {
	WithName(name string) Logger
	WithData(data ...Data) Logger

	Debug(message string, data ...Data)
	Info(message string, data ...Data)
	Error(message string, err error, data ...Data)
}
