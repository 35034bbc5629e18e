package inventory

// Static catalogs backing the request-preparation UI menus. These are
// fixed vocabularies, not inventory-derived data.

// NetworkType is one selectable network filter. Nil flags mean "no
// constraint" on that attribute.
type NetworkType struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Permanent   *bool  `json:"permanent"`
	Restricted  *bool  `json:"restricted"`
}

// SensorType is one selectable instrument class.
type SensorType struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Phase is one selectable anchor phase for event-relative windows.
type Phase struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func boolPtr(b bool) *bool { return &b }

// NetworkTypes lists the supported network filters.
func NetworkTypes() []NetworkType {
	return []NetworkType{
		{Code: "all", Description: "All nets"},
		{Code: "virt", Description: "Virtual nets"},
		{Code: "perm", Description: "All permanent nets", Permanent: boolPtr(true)},
		{Code: "temp", Description: "All temporary nets", Permanent: boolPtr(false)},
		{Code: "open", Description: "All public nets", Restricted: boolPtr(false)},
		{Code: "restr", Description: "All non-public nets", Restricted: boolPtr(true)},
		{Code: "permo", Description: "Public permanent nets", Permanent: boolPtr(true), Restricted: boolPtr(false)},
		{Code: "tempo", Description: "Public temporary nets", Permanent: boolPtr(false), Restricted: boolPtr(false)},
		{Code: "permr", Description: "Non-public permanent nets", Permanent: boolPtr(true), Restricted: boolPtr(true)},
		{Code: "tempr", Description: "Non-public temporary nets", Permanent: boolPtr(false), Restricted: boolPtr(true)},
	}
}

// SensorTypes lists the supported instrument classes.
func SensorTypes() []SensorType {
	return []SensorType{
		{Code: "all", Description: "Any"},
		{Code: "VBB", Description: "Very broad band"},
		{Code: "BB", Description: "Broad band"},
		{Code: "VBB BB", Description: "Very Broad band and Broad band"},
		{Code: "BB SM", Description: "Broad band / Strong motion"},
		{Code: "SP", Description: "Short Period"},
		{Code: "SM", Description: "Strong motion"},
		{Code: "OBS", Description: "Ocean bottom seismometer"},
	}
}

// Phases lists the anchor phases callers may request. The engine resolves
// each to a family of travel-time branches; see the window package.
func Phases() []Phase {
	return []Phase{
		{Code: "P", Description: "P/Pdiff"},
		{Code: "S", Description: "S/Sdiff"},
	}
}
