// Package i18n fornece as mensagens localizadas da API (pt, en, fr).
// O português é a língua base; en e fr cobrem os compradores internacionais.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.Portuguese, // default
	language.English,
	language.French,
}

var matcher = language.NewMatcher(supported)

func init() {
	for _, entry := range entries {
		for tag, msg := range entry.translations {
			_ = message.SetString(tag, entry.key, msg)
		}
	}
}

type entry struct {
	key          string
	translations map[language.Tag]string
}

var entries = []entry{
	{"order.below_minimum", map[language.Tag]string{
		language.Portuguese: "o valor total da encomenda não atinge o mínimo exigido",
		language.English:    "the order total does not reach the required minimum",
		language.French:     "le total de la commande n'atteint pas le minimum requis",
	}},
	{"order.delivery_out_of_window", map[language.Tag]string{
		language.Portuguese: "a data de entrega deve estar dentro dos próximos 14 dias",
		language.English:    "the delivery date must fall within the next 14 days",
		language.French:     "la date de livraison doit se situer dans les 14 prochains jours",
	}},
	{"order.cancel_window_closed", map[language.Tag]string{
		language.Portuguese: "o prazo de cancelamento de 3 horas já terminou",
		language.English:    "the 3 hour cancellation window has closed",
		language.French:     "le délai d'annulation de 3 heures est écoulé",
	}},
	{"otp.sent", map[language.Tag]string{
		language.Portuguese: "código de verificação enviado",
		language.English:    "verification code sent",
		language.French:     "code de vérification envoyé",
	}},
	{"otp.invalid", map[language.Tag]string{
		language.Portuguese: "código inválido ou expirado",
		language.English:    "invalid or expired code",
		language.French:     "code invalide ou expiré",
	}},
	{"support.received", map[language.Tag]string{
		language.Portuguese: "mensagem recebida, entraremos em contacto em breve",
		language.English:    "message received, we will contact you shortly",
		language.French:     "message reçu, nous vous contacterons sous peu",
	}},
}

// Match resolve o melhor idioma suportado a partir do header Accept-Language.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.Portuguese
	}
	tag, _, _ := matcher.Match(tags...)
	// O matcher pode devolver variantes (pt-BR); reduzir à base registada.
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return language.English
	case "fr":
		return language.French
	default:
		return language.Portuguese
	}
}

// T devolve a mensagem localizada para a chave dada.
func T(tag language.Tag, key string) string {
	return message.NewPrinter(tag).Sprintf(key)
}
