package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Rule describes the constraints for one field of a JSON request body.
// Rules are evaluated in declaration order and every violation is reported,
// so callers get the full picture in a single round trip.
type Rule struct {
	Field     string
	Required  bool
	Type      string // "string" is the only supported type today
	MinLength int    // 0 disables the check
	MaxLength int    // 0 disables the check
}

// Validate runs the rules against a decoded payload and returns every
// violation as a user-facing message. An empty slice means the payload
// is acceptable.
func Validate(rules []Rule, payload map[string]any) []string {
	var violations []string

	for _, rule := range rules {
		value, present := payload[rule.Field]
		if value == nil {
			present = false
		}

		if !present {
			if rule.Required {
				violations = append(violations, fmt.Sprintf("Campo obrigatório: %s", rule.Field))
			}
			continue
		}

		if rule.Type == "string" {
			str, ok := value.(string)
			if !ok {
				violations = append(violations, fmt.Sprintf("Campo %s deve ser do tipo %s", rule.Field, rule.Type))
				continue
			}
			if rule.Required && str == "" {
				violations = append(violations, fmt.Sprintf("Campo obrigatório: %s", rule.Field))
				continue
			}

			length := utf8.RuneCountInString(str)
			if rule.MinLength > 0 && length < rule.MinLength {
				violations = append(violations, fmt.Sprintf("Campo %s deve ter no mínimo %d caracteres", rule.Field, rule.MinLength))
			}
			if rule.MaxLength > 0 && length > rule.MaxLength {
				violations = append(violations, fmt.Sprintf("Campo %s deve ter no máximo %d caracteres", rule.Field, rule.MaxLength))
			}
		}
	}

	return violations
}

// ValidateJSON decodes the request body once, validates it against the
// rules, and hands the decoded payload to the handler via context. On any
// violation the request is rejected with the full list of messages.
func ValidateJSON(rules ...Rule) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var payload map[string]any
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				WriteError(w, http.StatusBadRequest, MsgBadRequestBody)
				return
			}

			if violations := Validate(rules, payload); len(violations) > 0 {
				WriteErrorData(w, http.StatusBadRequest, MsgValidationFailed, violations)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPayload(r.Context(), payload)))
		})
	}
}
