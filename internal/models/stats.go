package models

const UnknownCountry = "Unknown"

type DeviceClass string

const (
	DeviceMobile  DeviceClass = "Mobile"
	DeviceTablet  DeviceClass = "Tablet"
	DeviceDesktop DeviceClass = "Desktop"
)

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type DeviceBreakdown struct {
	Mobile  int64 `json:"Mobile"`
	Tablet  int64 `json:"Tablet"`
	Desktop int64 `json:"Desktop"`
}

type VisitStats struct {
	ByCountry []CountryCount  `json:"byCountry"`
	ByDevice  DeviceBreakdown `json:"byDevice"`
}

type RankedPost struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Views  int64  `json:"views"`
	Rating int64  `json:"rating"`
}

type ContentStats struct {
	TotalRating int64        `json:"totalRating"`
	AvgRating   float64      `json:"avgRating"`
	TotalViews  int64        `json:"totalViews"`
	TopByViews  []RankedPost `json:"topByViews"`
	TopByRating []RankedPost `json:"topByRating"`
}

type Analytics struct {
	ContentStats
	GlobalDistribution []CountryCount  `json:"globalDistribution"`
	DeviceBreakdown    DeviceBreakdown `json:"deviceBreakdown"`
	TotalVisits        int64           `json:"totalVisits"`
}
