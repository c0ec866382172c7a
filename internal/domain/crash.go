package domain

// Filters narrows the crash set by date range and severity. Zero values mean
// "no constraint on that dimension". Malformed values are normalized away by
// the query layer rather than rejected.
type Filters struct {
	DateFrom string   `json:"dateFrom,omitempty"`
	DateTo   string   `json:"dateTo,omitempty"`
	Severity []string `json:"severity,omitempty"`
}

// IsZero reports whether the filter constrains anything at all.
func (f *Filters) IsZero() bool {
	return f == nil || (f.DateFrom == "" && f.DateTo == "" && len(f.Severity) == 0)
}

// SummaryBucket is one {label, count} pair in a categorical breakdown.
type SummaryBucket struct {
	Bucket string `db:"bucket" json:"bucket"`
	Count  int    `db:"count" json:"count"`
}

// SummaryTotals carries the person-category sums over the filtered set.
type SummaryTotals struct {
	Persons       int `db:"persons" json:"persons"`
	Pedestrians   int `db:"pedestrians" json:"pedestrians"`
	Cyclists      int `db:"cyclists" json:"cyclists"`
	HeavyVehicles int `db:"heavy_vehicles" json:"heavyVehicles"`
}

// Summary is the aggregate answer for one polygon + filter request. It is
// recomputed per request and never persisted.
type Summary struct {
	Total              int             `json:"total"`
	BySeverity         []SummaryBucket `json:"bySeverity"`
	ByType             []SummaryBucket `json:"byType"`
	BySpeedZone        []SummaryBucket `json:"bySpeedZone"`
	ByRoadGeometry     []SummaryBucket `json:"byRoadGeometry"`
	ByDayOfWeek        []SummaryBucket `json:"byDayOfWeek"`
	ByLightCondition   []SummaryBucket `json:"byLightCondition"`
	Totals             SummaryTotals   `json:"totals"`
	LatestAccidentDate *string         `json:"latestAccidentDate"`
}

// CrashPoint is one crash projected for map display: coordinates,
// classification and participant counts, no aggregation.
type CrashPoint struct {
	AccidentNo     string  `db:"accident_no" json:"accidentNo"`
	AccidentDate   *string `db:"accident_date" json:"accidentDate"`
	AccidentType   *string `db:"accident_type" json:"accidentType"`
	Severity       *string `db:"severity" json:"severity"`
	SpeedZone      *string `db:"speed_zone" json:"speedZone"`
	RoadGeometry   *string `db:"road_geometry" json:"roadGeometry"`
	DayOfWeek      *string `db:"day_of_week" json:"dayOfWeek"`
	LightCondition *string `db:"light_condition" json:"lightCondition"`
	Lon            float64 `db:"lon" json:"lon"`
	Lat            float64 `db:"lat" json:"lat"`

	TotalPersons            int `db:"total_persons" json:"totalPersons"`
	Pedestrians             int `db:"pedestrian_count" json:"pedestrians"`
	Cyclists                int `db:"bicyclist_count" json:"cyclists"`
	HeavyVehicles           int `db:"heavy_vehicle_count" json:"heavyVehicles"`
	PassengerVehicles       int `db:"passenger_vehicle_count" json:"passengerVehicles"`
	Motorcycles             int `db:"motorcycle_count" json:"motorcycles"`
	PublicTransportVehicles int `db:"public_transport_vehicle_count" json:"publicTransportVehicles"`
	Passengers              int `db:"passenger_count" json:"passengers"`
	Drivers                 int `db:"driver_count" json:"drivers"`
	Pillions                int `db:"pillion_count" json:"pillions"`
	Motorcyclists           int `db:"motorcyclist_count" json:"motorcyclists"`
	Unknown                 int `db:"unknown_count" json:"unknown"`
	PedCyclist5To12         int `db:"ped_cyclist_5_12" json:"pedCyclist5To12"`
	PedCyclist13To18        int `db:"ped_cyclist_13_18" json:"pedCyclist13To18"`
	OldPed65Plus            int `db:"old_ped_65_and_over" json:"oldPed65Plus"`
	OldDriver75Plus         int `db:"old_driver_75_and_over" json:"oldDriver75Plus"`
	YoungDriver18To25       int `db:"young_driver_18_25" json:"youngDriver18To25"`
	NoOfVehicles            int `db:"no_of_vehicles" json:"noOfVehicles"`
}

// SeverityLabel returns the display label, mapping missing values to Unknown.
func (p *CrashPoint) SeverityLabel() string {
	if p.Severity == nil || *p.Severity == "" {
		return SeverityLabelUnknown
	}
	return *p.Severity
}
