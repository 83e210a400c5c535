package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

const (
	formatPretty = "pretty"
	formatJSON   = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatPretty, formatJSON, "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func statusOf(s domain.Snapshot) domain.LifecycleStatus {
	if s.Active {
		return domain.StatusActive
	}
	return domain.StatusEnded
}

func printSnapshot(w io.Writer, s domain.Snapshot, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, s)
	}
	printPrettySnapshot(w, s)
	return nil
}

func printPrettySnapshot(w io.Writer, s domain.Snapshot) {
	fmt.Fprintf(w, "Diet:        %s\n", s.ID)
	fmt.Fprintf(w, "Type:        %s\n", s.Type.DisplayName())
	fmt.Fprintf(w, "Description: %s\n", s.Description)
	fmt.Fprintf(w, "Status:      %s\n", statusOf(s))
	fmt.Fprintf(w, "Responsible: %s\n", s.ResponsibleUser)
	fmt.Fprintf(w, "Started:     %s\n", s.StartDate.Format(time.RFC3339))
	if s.EndDate != nil {
		fmt.Fprintf(w, "Ended:       %s\n", s.EndDate.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Updated:     %s\n", s.UpdatedAt.Format(time.RFC3339))

	forbidden := "(none)"
	if len(s.ForbiddenRestrictions) > 0 {
		forbidden = strings.Join(s.ForbiddenRestrictions, ", ")
	}
	fmt.Fprintf(w, "Forbidden:   %s\n", forbidden)

	fmt.Fprintf(w, "Items:       %d\n", len(s.Items))
	for _, it := range s.Items {
		fmt.Fprintf(w, "  - %s (%g)", it.Name, it.Quantity)
		if len(it.Restrictions) > 0 {
			fmt.Fprintf(w, " [%s]", strings.Join(it.Restrictions, ", "))
		}
		fmt.Fprintln(w)
	}
}

// dietView is what `show` renders: the stored state plus the computed
// nutrient summary.
type dietView struct {
	Diet       domain.Snapshot        `json:"diet"`
	Summary    domain.NutrientSummary `json:"summary"`
	Compatible bool                   `json:"compatible"`
}

func printDietView(w io.Writer, v dietView, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, v)
	}

	printPrettySnapshot(w, v.Diet)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary (%s):\n", v.Summary.DietType)
	for _, kv := range []struct{ k, v string }{
		{"texture", v.Summary.Texture},
		{"route", v.Summary.Route},
		{"equipment", v.Summary.Equipment},
		{"access", v.Summary.Access},
		{"composition", v.Summary.Composition},
	} {
		if kv.v != "" {
			fmt.Fprintf(w, "  %s: %s\n", kv.k, kv.v)
		}
	}
	if v.Summary.EquipmentPerPortion != nil {
		fmt.Fprintf(w, "  equipment_per_portion: %t\n", *v.Summary.EquipmentPerPortion)
	}
	if v.Summary.SingleEquipmentPerDay != nil {
		fmt.Fprintf(w, "  single_equipment_per_day: %t\n", *v.Summary.SingleEquipmentPerDay)
	}

	keys := make([]string, 0, len(v.Summary.Prescribed))
	for k := range v.Summary.Prescribed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", k, v.Summary.Prescribed[k])
	}
	for _, c := range v.Summary.Components {
		fmt.Fprintf(w, "  component %s: %g%% %s (%s)\n", c.ID, c.Percentage, c.Type.DisplayName(), c.Description)
	}

	mark := "✓ compatible"
	if !v.Compatible {
		mark = "✗ incompatible items"
	}
	fmt.Fprintf(w, "  %s\n", mark)
	return nil
}

func printDietList(w io.Writer, snaps []domain.Snapshot, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		if snaps == nil {
			snaps = []domain.Snapshot{}
		}
		return writeJSON(w, snaps)
	}

	if len(snaps) == 0 {
		fmt.Fprintln(w, "(no diets found)")
		return nil
	}
	for _, s := range snaps {
		fmt.Fprintf(w, "- %s  %-10s %-6s %s (%d item(s))\n",
			s.ID, s.Type.DisplayName(), statusOf(s), s.Description, len(s.Items))
	}
	return nil
}

func printQueryResults(w io.Writer, values map[string]string, format string) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	if format == formatJSON {
		return writeJSON(w, values)
	}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "%s = %s\n", n, values[n])
	}
	return nil
}
