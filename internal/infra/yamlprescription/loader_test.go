package yamlprescription

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistema-nutricional-hospitalar/snh/internal/domain"
)

func TestLoadPrescription_Enteral(t *testing.T) {
	path := filepath.Join("testdata", "enteral.yaml")
	req, err := NewLoader().LoadPrescription(path)
	require.NoError(t, err)

	assert.Equal(t, "enteral", req.Type)
	assert.Equal(t, "nutri.ana", req.ResponsibleUser)
	require.NotNil(t, req.Enteral)
	assert.Equal(t, 62.5, req.Enteral.RateMLPerHour)
	assert.Equal(t, 1, req.Enteral.DailyPortions, "omitted daily_portions defaults to 1")
	assert.Equal(t, []string{"lactose"}, req.ForbiddenRestrictions)
	require.Len(t, req.Items, 1)
	assert.Equal(t, "Fórmula polimérica", req.Items[0].Name)

	d, err := domain.NewDiet(req)
	require.NoError(t, err)
	assert.Equal(t, domain.DietEnteral, d.Type())
	assert.Equal(t, 1, d.ItemCount())
}

func TestLoadPrescription_Mixed(t *testing.T) {
	req, err := NewLoader().LoadPrescription(filepath.Join("testdata", "mixed.yaml"))
	require.NoError(t, err)
	require.NotNil(t, req.Mixed)
	require.Len(t, req.Mixed.Components, 2)
	assert.Equal(t, "oral", req.Mixed.Components[1].Diet.Type)

	d, err := domain.NewDiet(req)
	require.NoError(t, err)
	m, ok := d.(*domain.MixedDiet)
	require.True(t, ok)
	assert.Equal(t, 100.0, m.TotalPercentage())
	assert.Equal(t, "nutri.ana", m.Components()[0].Diet.Audit().ResponsibleUser)
	assert.True(t, m.ValidateCompatibility())
}

func TestLoadPrescription_Errors(t *testing.T) {
	cases := []struct {
		file string
		kind domain.ErrorKind
		want string
	}{
		{"missing_block.yaml", domain.KindInvalidConfig, "field parenteral"},
		{"broken.yaml", domain.KindInvalidConfig, "broken.yaml"},
		{"absent.yaml", domain.KindNotFound, "absent.yaml"},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			_, err := NewLoader().LoadPrescription(filepath.Join("testdata", c.file))
			require.Error(t, err)
			assert.True(t, domain.IsKind(err, c.kind), "got %v", err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestListPrescriptions(t *testing.T) {
	l := NewLoader(WithPrescriptionsDir("testdata"))
	refs, err := l.ListPrescriptions(".")
	require.NoError(t, err)

	var names, types []string
	for _, r := range refs {
		names = append(names, r.Name)
		types = append(types, r.Type)
	}
	assert.Equal(t, []string{"broken", "enteral", "missing_block", "mixed", "oral"}, names)
	assert.Equal(t, []string{"", "enteral", "parenteral", "mixed", "oral"}, types)
}

func TestListPrescriptions_MissingDir(t *testing.T) {
	_, err := NewLoader().ListPrescriptions(t.TempDir())
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
