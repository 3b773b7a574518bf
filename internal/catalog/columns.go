package catalog

import "strings"

// Canonical column names for recognized fields. They match the bundled
// dataset's header spelling so exports and source files line up.
const (
	ColumnNoradID      = "NORAD_ID"
	ColumnCosparID     = "COSPAR_ID"
	ColumnName         = "Name"
	ColumnOperator     = "Operator"
	ColumnMissionType  = "Mission_Type"
	ColumnLocation     = "Current_Location"
	ColumnTLEAvailable = "Earth_TLE_Available"
	ColumnViewUtility  = "3I_ATLAS_View_Utility"
	ColumnLaunchDate   = "Launch_Date_UTC"
	ColumnNotes        = "Notes"
)

// headerSynonyms maps normalized header spellings to canonical column names.
// Columns are matched by name, never position, so reordered or renamed
// headers from other catalog exports still land on the right field.
var headerSynonyms = map[string]string{
	"noradid":                 ColumnNoradID,
	"norad":                   ColumnNoradID,
	"noradsatcatid":           ColumnNoradID,
	"noradcatalogid":          ColumnNoradID,
	"satcatid":                ColumnNoradID,
	"cosparid":                ColumnCosparID,
	"cospar":                  ColumnCosparID,
	"internationaldesignator": ColumnCosparID,
	"intldes":                 ColumnCosparID,
	"name":                    ColumnName,
	"satellitename":           ColumnName,
	"spacecraftname":          ColumnName,
	"operator":                ColumnOperator,
	"owner":                   ColumnOperator,
	"missiontype":             ColumnMissionType,
	"mission":                 ColumnMissionType,
	"currentlocation":         ColumnLocation,
	"location":                ColumnLocation,
	"orbit":                   ColumnLocation,
	"earthtleavailable":       ColumnTLEAvailable,
	"tleavailable":            ColumnTLEAvailable,
	"tle":                     ColumnTLEAvailable,
	"3iatlasviewutility":      ColumnViewUtility,
	"atlasviewutility":        ColumnViewUtility,
	"viewutility":             ColumnViewUtility,
	"launchdateutc":           ColumnLaunchDate,
	"launchdate":              ColumnLaunchDate,
	"launched":                ColumnLaunchDate,
	"notes":                   ColumnNotes,
	"comments":                ColumnNotes,
	"remarks":                 ColumnNotes,
}

// DefaultFacetColumns lists the categorical columns offered as filter
// multiselects and value-count charts, in display order.
var DefaultFacetColumns = []string{
	ColumnMissionType,
	ColumnOperator,
	ColumnLocation,
	ColumnTLEAvailable,
	ColumnViewUtility,
}

// CanonicalColumn resolves a source header to its canonical column name.
// The second return reports whether the header is a recognized field;
// unrecognized headers pass through as extras under their trimmed name.
func CanonicalColumn(header string) (string, bool) {
	canonical, ok := headerSynonyms[normalizeHeader(header)]
	return canonical, ok
}

func normalizeHeader(header string) string {
	header = strings.TrimSpace(header)
	header = strings.ToLower(header)
	replacer := strings.NewReplacer(" ", "", "_", "", "-", "")
	return replacer.Replace(header)
}
