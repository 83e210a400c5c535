package yamlprescription

// YAMLPrescription is the on-disk shape of a prescription request.
type YAMLPrescription struct {
	Type            string `yaml:"type"`
	Description     string `yaml:"description"`
	ResponsibleUser string `yaml:"responsible_user"`

	Oral       *YAMLOral       `yaml:"oral"`
	Enteral    *YAMLEnteral    `yaml:"enteral"`
	Parenteral *YAMLParenteral `yaml:"parenteral"`
	Mixed      *YAMLMixed      `yaml:"mixed"`

	ForbiddenRestrictions []string   `yaml:"forbidden_restrictions"`
	Items                 []YAMLItem `yaml:"items"`
}

type YAMLOral struct {
	Texture   string `yaml:"texture"`
	MealCount int    `yaml:"meal_count"`
	MealType  string `yaml:"meal_type"`
}

type YAMLEnteral struct {
	Route           string  `yaml:"route"`
	RateMLPerHour   float64 `yaml:"rate_ml_h"`
	GramsPerPortion float64 `yaml:"grams_per_portion"`
	DailyPortions   *int    `yaml:"daily_portions"`
	Equipment       string  `yaml:"equipment"`
}

type YAMLParenteral struct {
	Access         string  `yaml:"access"`
	VolumeMLPerDay float64 `yaml:"volume_ml_day"`
	Composition    string  `yaml:"composition"`
	RateMLPerHour  float64 `yaml:"rate_ml_h"`
}

// YAMLMixed nests full prescriptions, each with its share of the diet.
type YAMLMixed struct {
	Components []YAMLComponent `yaml:"components"`
}

type YAMLComponent struct {
	Percentage   float64          `yaml:"percentage"`
	Prescription YAMLPrescription `yaml:"prescription"`
}

type YAMLItem struct {
	Name         string   `yaml:"name"`
	Quantity     float64  `yaml:"quantity"`
	Restrictions []string `yaml:"restrictions"`
}
