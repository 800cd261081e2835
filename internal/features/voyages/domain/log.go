package domain

import "time"

// DraftNote is the advisory stamped on every generated log. The output is
// a starting point for a human editor, not a publishable record.
const DraftNote = "Auto-detected draft - review and edit before publishing"

// VoyageLog is the reviewable draft document. Field names and layout are
// the published contract for downstream editing tools.
type VoyageLog struct {
	// Generated is the generation time as an RFC 3339 UTC string.
	Generated string `json:"_generated"`
	// Note marks the document as an unreviewed draft.
	Note string `json:"_note"`
	// Ports is the catalog used for detection, keyed by port name.
	Ports map[string]Port `json:"ports"`
	// Voyages are the detected voyages in chronological order.
	Voyages []VoyageEntry `json:"voyages"`
}

// VoyageEntry is one voyage in the draft document.
type VoyageEntry struct {
	ID string `json:"id"`
	// Note is empty in a draft; editors fill it in.
	Note  string      `json:"note"`
	Start string      `json:"start"`
	End   string      `json:"end"`
	Stops []StopEntry `json:"stops"`
}

// StopEntry is one port call in a voyage, with the feed identifiers of its
// boundary observations so an editor can trace the detection.
type StopEntry struct {
	Port        string  `json:"port"`
	Arrive      string  `json:"arrive"`
	Depart      string  `json:"depart"`
	ArriveGMLID string  `json:"arrive_gml_id"`
	DepartGMLID string  `json:"depart_gml_id"`
	DwellHours  float64 `json:"dwell_hours"`
}

// BuildLog assembles the draft document from detected voyages. A run with
// no voyages still carries the full port catalog and an empty voyage list.
func BuildLog(catalog *Catalog, voyages []Voyage, generatedAt time.Time) *VoyageLog {
	ports := make(map[string]Port, catalog.Len())
	for _, p := range catalog.Ports() {
		ports[p.Name] = p
	}

	entries := make([]VoyageEntry, 0, len(voyages))
	for _, v := range voyages {
		stops := make([]StopEntry, 0, len(v.Visits))
		for _, visit := range v.Visits {
			stops = append(stops, StopEntry{
				Port:        visit.Port,
				Arrive:      formatLogTime(visit.Arrive),
				Depart:      formatLogTime(visit.Depart),
				ArriveGMLID: visit.ArriveGMLID,
				DepartGMLID: visit.DepartGMLID,
				DwellHours:  visit.DwellHours,
			})
		}
		entries = append(entries, VoyageEntry{
			ID:    v.ID,
			Note:  "",
			Start: formatLogTime(v.Start),
			End:   formatLogTime(v.End),
			Stops: stops,
		})
	}

	return &VoyageLog{
		Generated: formatLogTime(generatedAt),
		Note:      DraftNote,
		Ports:     ports,
		Voyages:   entries,
	}
}

// formatLogTime renders a timestamp for the draft document: RFC 3339, UTC,
// whole seconds.
func formatLogTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
