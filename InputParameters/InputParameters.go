package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"
)

// FieldFile names a field file to attach to the mesh after it is read
type FieldFile struct {
	File string `json:"File"`
	Kind string `json:"Kind"` // "vector" or "scalar"
}

// Parameters obtained from the YAML case file
type CaseParameters struct {
	Title       string               `json:"Title"`
	CaseDir     string               `json:"CaseDir"`
	HeaderLines *int                 `json:"HeaderLines"` // nil means the reader default
	CellCenters string               `json:"CellCenters"`
	Fields      map[string]FieldFile `json:"Fields"` // keyed by the name the field is attached under
	Patches     []string             `json:"Patches"`
}

func (cp *CaseParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, cp)
}

// Validate checks the parameters that the mesh command needs
func (cp *CaseParameters) Validate() (err error) {
	if len(cp.CaseDir) == 0 {
		return fmt.Errorf("case parameters must name a CaseDir")
	}
	if cp.HeaderLines != nil && *cp.HeaderLines < 0 {
		return fmt.Errorf("HeaderLines must not be negative, have %d", *cp.HeaderLines)
	}
	for name, ff := range cp.Fields {
		if ff.Kind != "vector" && ff.Kind != "scalar" {
			return fmt.Errorf("field %s: Kind must be vector or scalar, have %q", name, ff.Kind)
		}
		if len(ff.File) == 0 {
			return fmt.Errorf("field %s: missing File", name)
		}
	}
	return
}

// FieldNames returns the field names in sorted order
func (cp *CaseParameters) FieldNames() (keys []string) {
	keys = make([]string, len(cp.Fields))
	i := 0
	for k := range cp.Fields {
		keys[i] = k
		i++
	}
	sort.Strings(keys)
	return
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%s]\t= Case Directory\n", cp.CaseDir)
	if cp.HeaderLines != nil {
		fmt.Printf("[%d]\t\t\t\t= Header Lines\n", *cp.HeaderLines)
	}
	if len(cp.CellCenters) != 0 {
		fmt.Printf("[%s]\t= Cell Centers\n", cp.CellCenters)
	}
	for _, key := range cp.FieldNames() {
		fmt.Printf("Fields[%s] = %v\n", key, cp.Fields[key])
	}
	for _, patch := range cp.Patches {
		fmt.Printf("[%s]\t\t= Patch\n", patch)
	}
}
