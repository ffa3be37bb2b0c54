package domain

// EnergySource is a generation source key used in the energy mix.
type EnergySource string

const (
	SourceBiomass EnergySource = "biomass"
	SourceNuclear EnergySource = "nuclear"
	SourceHydro   EnergySource = "hydro"
	SourceWind    EnergySource = "wind"
	SourceSolar   EnergySource = "solar"
	SourceCoal    EnergySource = "coal"
	SourceGas     EnergySource = "gas"
	SourceImports EnergySource = "imports"
	SourceOther   EnergySource = "other"
)

// SourcesOrder is the display order used by charts and tables.
var SourcesOrder = []EnergySource{
	SourceBiomass,
	SourceCoal,
	SourceGas,
	SourceImports,
	SourceNuclear,
	SourceSolar,
	SourceWind,
	SourceHydro,
	SourceOther,
}

// SourceLabels maps each source to its human-readable name.
var SourceLabels = map[EnergySource]string{
	SourceBiomass: "Biomass",
	SourceCoal:    "Coal",
	SourceGas:     "Gas",
	SourceImports: "Imports",
	SourceNuclear: "Nuclear",
	SourceSolar:   "Solar",
	SourceWind:    "Wind",
	SourceHydro:   "Hydro",
	SourceOther:   "Other",
}

// SourceColors maps each source to its chart colour.
var SourceColors = map[EnergySource]string{
	SourceBiomass: "#7c4a10",
	SourceCoal:    "#000000",
	SourceGas:     "#103fb5",
	SourceImports: "#2e8d16",
	SourceNuclear: "#ff0000",
	SourceSolar:   "#fbbf24",
	SourceWind:    "#0ea5e9",
	SourceHydro:   "#00126b",
	SourceOther:   "#6b7280",
}

// Label returns the display name, falling back to the raw key.
func (s EnergySource) Label() string {
	if l, ok := SourceLabels[s]; ok {
		return l
	}
	return string(s)
}

// RawEnergyMixDay is one day of the generation mix as the backend returns it.
type RawEnergyMixDay struct {
	Date            string                   `json:"date"`
	Mix             map[EnergySource]float64 `json:"mix"`
	CleanPercentage float64                  `json:"cleanPercentage"`
}

// EnergyMixDay is one day of the generation mix in the shape the dashboard uses.
type EnergyMixDay struct {
	Date             string                   `json:"date"`
	Sources          map[EnergySource]float64 `json:"sources"`
	CleanEnergyShare float64                  `json:"cleanEnergyShare"`
}
