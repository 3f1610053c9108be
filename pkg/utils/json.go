package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var prettyJSON = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// PrettyJson serializa o valor com indentação; bytes são tratados como JSON já serializado
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := prettyJSON.Unmarshal(raw, &decoded); err != nil {
			logrus.WithError(err).Warn("Conteúdo recebido não é um JSON válido")
			return string(raw)
		}
		in = decoded
	}

	out, err := prettyJSON.MarshalIndent(in, "", "\t")
	if err != nil {
		logrus.WithError(err).Warn("Erro ao serializar JSON")
		return ""
	}

	return string(out)
}
