package constant

type ListingType string

const (
	ListingTypeCargo     ListingType = "CARGO"
	ListingTypeTransport ListingType = "TRANSPORT"
)

type ListingStatus string

const (
	ListingStatusActive  ListingStatus = "ACTIVE"
	ListingStatusDeleted ListingStatus = "DELETED"
)

// PointRole is the explicit role of a listing route point. Cargo listings use
// PICKUP/DROPOFF, transport listings DEPARTURE/ARRIVAL.
type PointRole string

const (
	PointRolePickup    PointRole = "PICKUP"
	PointRoleDropoff   PointRole = "DROPOFF"
	PointRoleDeparture PointRole = "DEPARTURE"
	PointRoleArrival   PointRole = "ARRIVAL"
)

// CargoTypeAPI is the coarse cargo classification carried on the wire.
type CargoTypeAPI string

const (
	CargoTypeGeneral CargoTypeAPI = "GENERAL"
	CargoTypeLiquid  CargoTypeAPI = "LIQUID"
	CargoTypeBulk    CargoTypeAPI = "BULK"
	CargoTypePallets CargoTypeAPI = "PALLETS"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

type PaymentTerm string

const (
	PaymentTermPrepaid  PaymentTerm = "PREPAID"
	PaymentTermOnLoad   PaymentTerm = "ON_LOAD"
	PaymentTermOnUnload PaymentTerm = "ON_UNLOAD"
)

type GeoLevel string

const (
	GeoLevelCountry GeoLevel = "COUNTRY"
	GeoLevelRegion  GeoLevel = "REGION"
	GeoLevelCity    GeoLevel = "CITY"
)
