// Package places wraps the Google geocoding and places upstreams behind a
// small client.  The two search modes (type-restricted nearby vs free-text)
// return heterogeneous payloads that are normalized here into one Result
// shape, including the distance from the search center.
package places

// LatLng is a coordinate pair.
type LatLng struct {
	Lat float64
	Lng float64
}

// Result is the normalized shape for a single service provider.
type Result struct {
	Name          string   `json:"name"`
	Address       string   `json:"address,omitempty"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	TotalReviews  *int     `json:"totalReviews,omitempty"`
	PriceLevel    *int     `json:"priceLevel,omitempty"`
	DistanceMiles float64  `json:"distanceMiles"`
	OpenNow       *bool    `json:"openNow,omitempty"`
	Website       string   `json:"website,omitempty"`
	GoogleMapsURL *string  `json:"googleMapsUrl,omitempty"`
	ServiceTypes  []string `json:"serviceTypes,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PlaceID       string   `json:"placeId,omitempty"`
	PhotoURLs     []string `json:"photoUrls"`
}

// ----- upstream wire shapes -----

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Geometry geometry `json:"geometry"`
}

type geometry struct {
	Location geocodeLocation `json:"location"`
}

type geocodeLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type nearbySearchRequest struct {
	IncludedTypes       []string            `json:"includedTypes"`
	MaxResultCount      int                 `json:"maxResultCount"`
	LocationRestriction locationRestriction `json:"locationRestriction"`
	RankPreference      string              `json:"rankPreference"`
}

type textSearchRequest struct {
	TextQuery      string       `json:"textQuery"`
	MaxResultCount int          `json:"maxResultCount"`
	LocationBias   locationBias `json:"locationBias"`
}

type locationRestriction struct {
	Circle circle `json:"circle"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type circle struct {
	Center center  `json:"center"`
	Radius float64 `json:"radius"`
}

type center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type placesSearchResponse struct {
	Places []place `json:"places"`
}

type place struct {
	ID                  string               `json:"id"` // resource name: "places/ChIJ..."
	DisplayName         *displayName         `json:"displayName"`
	FormattedAddress    string               `json:"formattedAddress"`
	Location            *placeLocation       `json:"location"`
	Rating              *float64             `json:"rating"`
	UserRatingCount     *int                 `json:"userRatingCount"`
	NationalPhoneNumber string               `json:"nationalPhoneNumber"`
	WebsiteURI          string               `json:"websiteUri"`
	BusinessStatus      string               `json:"businessStatus"`
	PriceLevel          *int                 `json:"priceLevel"`
	Types               []string             `json:"types"`
	CurrentOpeningHours *currentOpeningHours `json:"currentOpeningHours"`
	Photos              []photo              `json:"photos"`
}

type displayName struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode"`
}

type placeLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type currentOpeningHours struct {
	OpenNow *bool `json:"openNow"`
}

type photo struct {
	Name     string `json:"name"` // resource name for the photo
	WidthPx  int    `json:"widthPx"`
	HeightPx int    `json:"heightPx"`
}
