package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func shortID(id string) string {
	if utf8.RuneCountInString(id) <= 8 {
		return id
	}
	return clampString(id, 8)
}

func statusLabel(s domain.Snapshot) string {
	if s.Active {
		return "ativa"
	}
	return "encerrada"
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return fmt.Sprintf("%g", x)
	case bool:
		if x {
			return "sim"
		}
		return "não"
	default:
		return fmt.Sprint(x)
	}
}

func renderDietDetails(th Theme, s domain.Snapshot) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s · %s\n", s.Type.DisplayName(), s.Description))
	b.WriteString(fmt.Sprintf("ID: %s\n", s.ID))
	b.WriteString(fmt.Sprintf("Status: %s\n", th.Status(s)))
	b.WriteString(fmt.Sprintf("Responsável: %s\n", s.ResponsibleUser))
	b.WriteString(fmt.Sprintf("Início: %s\n", s.StartDate.Format(time.RFC3339)))
	if s.EndDate != nil {
		b.WriteString(fmt.Sprintf("Fim: %s\n", s.EndDate.Format(time.RFC3339)))
	}
	b.WriteString("\n")

	summary, compatible, err := summarize(s)
	if err != nil {
		b.WriteString("Resumo indisponível: ")
		b.WriteString(userMessage(err))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("Prescrição:\n")
	keys := make([]string, 0, len(summary.Prescribed))
	for k := range summary.Prescribed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  - ")
		b.WriteString(k)
		b.WriteString(" = ")
		b.WriteString(formatValue(summary.Prescribed[k]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(summary.Components) > 0 {
		b.WriteString("Componentes:\n")
		for _, c := range summary.Components {
			b.WriteString(fmt.Sprintf("  - %g%% %s · %s\n", c.Percentage, c.Type.DisplayName(), c.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("Restrições proibidas: ")
	if len(summary.Restrictions.Forbidden) == 0 {
		b.WriteString("(nenhuma)")
	} else {
		b.WriteString(strings.Join(summary.Restrictions.Forbidden, ", "))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Itens (%d):\n", len(s.Items)))
	for _, it := range s.Items {
		b.WriteString(fmt.Sprintf("  - %s %gg", it.Name, it.Quantity))
		if len(it.Restrictions) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(it.Restrictions, ", "))
			b.WriteString("]")
		}
		b.WriteString("\n")
	}

	if !compatible {
		b.WriteString("\n" + th.Warn.Render("⚠ Itens incompatíveis com as restrições da dieta") + "\n")
	}
	return b.String()
}
