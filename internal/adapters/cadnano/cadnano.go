// Package cadnano reads and writes caDNAno 2 design JSON files.
package cadnano

// file is the top-level caDNAno JSON document
type file struct {
	Name     string    `json:"name"`
	VStrands []vstrand `json:"vstrands"`
}

// vstrand is one virtual helix. Each scaf/stap entry is
// [5' helix, 5' position, 3' helix, 3' position], -1 for no link.
type vstrand struct {
	Row        int     `json:"row"`
	Col        int     `json:"col"`
	Num        int     `json:"num"`
	Scaf       [][]int `json:"scaf"`
	Stap       [][]int `json:"stap"`
	Loop       []int   `json:"loop"`
	Skip       []int   `json:"skip"`
	ScafLoop   []int   `json:"scafLoop"`
	StapLoop   []int   `json:"stapLoop"`
	StapColors [][]int `json:"stap_colors"`
}

// caDNAno virtual helix lengths are multiples of the lattice step
const (
	honeycombStep = 21
	squareStep    = 32
)

var emptyEntry = []int{-1, -1, -1, -1}
