package relay

import "strings"

// maps a keyword group to one canned reply
type ReplyRule struct {
	Keywords []string `yaml:"keywords"`
	Reply    string   `yaml:"reply"`
}

// picks canned replies for visitors when no admin is online
type AutoReplier struct {
	rules        []ReplyRule
	firstContact string
	fallback     string
}

// builds an auto-replier; rules are matched in the given order
func NewAutoReplier(rules []ReplyRule, firstContact, fallback string) *AutoReplier {
	normalized := make([]ReplyRule, 0, len(rules))

	for _, rule := range rules {
		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				keywords = append(keywords, kw)
			}
		}

		normalized = append(normalized, ReplyRule{Keywords: keywords, Reply: rule.Reply})
	}

	return &AutoReplier{
		rules:        normalized,
		firstContact: firstContact,
		fallback:     fallback,
	}
}

// returns the reply for a visitor message; messageCount counts visitor
// messages on the current connection including this one
func (a *AutoReplier) Reply(text string, messageCount int) string {
	lower := strings.ToLower(text)

	// first matching group wins, table order matters
	for _, rule := range a.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Reply
			}
		}
	}

	if messageCount <= 1 {
		return a.firstContact
	}

	return a.fallback
}

// built-in keyword table used when no override file is configured
func DefaultReplyRules() []ReplyRule {
	return []ReplyRule{
		{
			Keywords: []string{"precio", "costo", "cuanto", "cuánto", "cobran", "tarifa"},
			Reply:    "El precio depende del tamaño de su colegio. Generalmente es S/ 0.50 por colegiado activo al mes, con un mínimo de S/ 300. Le puedo dar una cotización exacta si me indica cuántos colegiados tienen. 😊",
		},
		{
			Keywords: []string{"demo", "demostración", "mostrar", "ver", "probar"},
			Reply:    "¡Claro! Puede ver los videos demo aquí mismo en esta página, y si desea una demostración en vivo personalizada, podemos coordinar una reunión virtual. ¿Qué día le conviene?",
		},
		{
			Keywords: []string{"factura", "boleta", "sunat", "comprobante", "electrónic"},
			Reply:    "Sí, ColegiosPro incluye facturación electrónica completa: boletas, facturas, notas de crédito, todo validado por SUNAT en tiempo real. Ya funciona en producción con el Colegio de Contadores de Loreto.",
		},
		{
			Keywords: []string{"tiempo", "demora", "cuándo", "cuando", "plazo", "implementar"},
			Reply:    "La implementación básica toma entre 1-2 semanas. Incluye configuración, migración de datos del padrón de colegiados, capacitación al personal, y puesta en marcha de facturación electrónica.",
		},
	}
}

const (
	DefaultFirstContactReply = "Gracias por escribir. Duilio no está conectado en este momento, pero recibirá su mensaje y le responderá pronto. Mientras tanto, puede explorar los videos demo en esta página. 👇"
	DefaultFallbackReply     = "Gracias por su mensaje. En este momento no estoy conectado, pero le responderé a la brevedad. También puede escribirme a duilio@perusistemas.com o al WhatsApp. 📱"
)

// returns an auto-replier with the built-in table
func DefaultAutoReplier() *AutoReplier {
	return NewAutoReplier(DefaultReplyRules(), DefaultFirstContactReply, DefaultFallbackReply)
}
