package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "workspacefinder") {
				return "Workspace não encontrado"
			}
			if strings.Contains(oe.Op, "store") {
				return "Dieta não encontrada"
			}
			return "Não encontrado"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "YAML inválido em " + base + " linha " + line
			}

			if looksLikeYAMLProblem(err.Error()) {
				return "YAML inválido em " + base
			}
			return "Configuração inválida: " + base

		case domain.KindValidation:
			return "Dados inválidos: " + innermost(err)

		default:
			return "Erro inesperado (veja os logs)"
		}
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return "Dados inválidos: " + de.Msg
		case domain.KindNotFound:
			return de.Msg
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "YAML inválido na linha " + line
		}
		return "YAML inválido"
	}

	return "Erro inesperado (veja os logs)"
}

func innermost(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Msg
	}
	return err.Error()
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
