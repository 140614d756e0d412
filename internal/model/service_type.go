package model

// ServiceType enumerates the trades a customer can search for.  Each value
// carries two attached strings: a human readable display name and the query
// string sent to the upstream places API.  The mapping lives in a lookup
// table rather than methods-per-value so new trades are a one-line change.
type ServiceType string

const (
    ServiceTypePlumber           ServiceType = "PLUMBER"
    ServiceTypeElectrician       ServiceType = "ELECTRICIAN"
    ServiceTypeHVAC              ServiceType = "HVAC"
    ServiceTypeRoofing           ServiceType = "ROOFING"
    ServiceTypeGeneralContractor ServiceType = "GENERAL_CONTRACTOR"
    ServiceTypeLocksmith         ServiceType = "LOCKSMITH"
    ServiceTypePainter           ServiceType = "PAINTER"
    ServiceTypeMoving            ServiceType = "MOVING"
    ServiceTypePestControl       ServiceType = "PEST_CONTROL"
    ServiceTypeCarpenter         ServiceType = "CARPENTER"
    ServiceTypeLandscaping       ServiceType = "LANDSCAPING"
    ServiceTypeCleaning          ServiceType = "CLEANING"
    ServiceTypeHandyman          ServiceType = "HANDYMAN"
    ServiceTypeApplianceRepair   ServiceType = "APPLIANCE_REPAIR"
)

type serviceTypeInfo struct {
    displayName string
    searchQuery string
}

var serviceTypes = map[ServiceType]serviceTypeInfo{
    ServiceTypePlumber:           {"Plumber", "plumber"},
    ServiceTypeElectrician:       {"Electrician", "electrician"},
    ServiceTypeHVAC:              {"HVAC Technician", "hvac"},
    ServiceTypeRoofing:           {"Roofer", "roofing_contractor"},
    ServiceTypeGeneralContractor: {"General Contractor", "general_contractor"},
    ServiceTypeLocksmith:         {"Locksmith", "locksmith"},
    ServiceTypePainter:           {"Painter", "painter"},
    ServiceTypeMoving:            {"Moving Company", "moving_company"},
    ServiceTypePestControl:       {"Pest Control", "pest_control_service"},
    ServiceTypeCarpenter:         {"Carpenter", "carpenter"},
    ServiceTypeLandscaping:       {"Landscaper", "landscaping"},
    ServiceTypeCleaning:          {"House Cleaning", "house_cleaning"},
    ServiceTypeHandyman:          {"Handyman", "handyman"},
    ServiceTypeApplianceRepair:   {"Appliance Repair", "appliance_repair"},
}

// Valid reports whether t is a known service type.
func (t ServiceType) Valid() bool {
    _, ok := serviceTypes[t]
    return ok
}

// DisplayName returns the human readable name for the type, or the raw value
// when the type is unknown.
func (t ServiceType) DisplayName() string {
    if info, ok := serviceTypes[t]; ok {
        return info.displayName
    }
    return string(t)
}

// SearchQuery returns the query string that flows to the upstream places
// API, or the lowercased raw value when the type is unknown.
func (t ServiceType) SearchQuery() string {
    if info, ok := serviceTypes[t]; ok {
        return info.searchQuery
    }
    return string(t)
}
