package listing

import (
	"regexp"
	"strings"

	"github.com/cargomarket/backend/constant"
)

// cargoSubtypeGroups maps every detailed cargo subtype to its coarse API
// classification.
var cargoSubtypeGroups = map[string]constant.CargoTypeAPI{
	"bitumen":    constant.CargoTypeLiquid,
	"fuel":       constant.CargoTypeLiquid,
	"oil":        constant.CargoTypeLiquid,
	"chemicals":  constant.CargoTypeLiquid,
	"grain":      constant.CargoTypeBulk,
	"coal":       constant.CargoTypeBulk,
	"sand":       constant.CargoTypeBulk,
	"gravel":     constant.CargoTypeBulk,
	"fertilizer": constant.CargoTypeBulk,
	"pallets":    constant.CargoTypePallets,
	"boxes":      constant.CargoTypePallets,
	"equipment":  constant.CargoTypeGeneral,
	"metal":      constant.CargoTypeGeneral,
	"timber":     constant.CargoTypeGeneral,
	"containers": constant.CargoTypeGeneral,
	"food":       constant.CargoTypeGeneral,
}

// cargoSubtypeLabels are the display names of the detailed subtypes.
var cargoSubtypeLabels = map[string]string{
	"bitumen":    "Битум",
	"fuel":       "ГСМ",
	"oil":        "Масла",
	"chemicals":  "Химия",
	"grain":      "Зерно",
	"coal":       "Уголь",
	"sand":       "Песок",
	"gravel":     "Щебень",
	"fertilizer": "Удобрения",
	"pallets":    "Паллеты",
	"boxes":      "Коробки",
	"equipment":  "Оборудование",
	"metal":      "Металл",
	"timber":     "Лес",
	"containers": "Контейнеры",
	"food":       "Продукты",
}

// cargoTypeLabels are the display names of the coarse API groups.
var cargoTypeLabels = map[constant.CargoTypeAPI]string{
	constant.CargoTypeGeneral: "Генеральный груз",
	constant.CargoTypeLiquid:  "Наливной груз",
	constant.CargoTypeBulk:    "Насыпной груз",
	constant.CargoTypePallets: "Паллетированный груз",
}

var cargoTypeMarkerRe = regexp.MustCompile(`\[CargoType:([a-zA-Z_-]+)\]`)

// MapCargoTypeToAPI resolves a detailed subtype to the coarse wire enum.
// Unknown or empty subtypes fall back to GENERAL.
func MapCargoTypeToAPI(subtype string) constant.CargoTypeAPI {
	if group, ok := cargoSubtypeGroups[strings.ToLower(strings.TrimSpace(subtype))]; ok {
		return group
	}
	return constant.CargoTypeGeneral
}

// ParseCargoTypeMarker extracts the subtype from a legacy [CargoType:xxx]
// note marker. Empty when the note carries none or the subtype is unknown.
func ParseCargoTypeMarker(note string) string {
	m := cargoTypeMarkerRe.FindStringSubmatch(note)
	if m == nil {
		return ""
	}
	subtype := strings.ToLower(m[1])
	if _, ok := cargoSubtypeGroups[subtype]; !ok {
		return ""
	}
	return subtype
}

// StripCargoTypeMarker removes the legacy marker for presentation.
func StripCargoTypeMarker(note string) string {
	return strings.TrimSpace(cargoTypeMarkerRe.ReplaceAllString(note, ""))
}

// DetailedCargoType returns the display name for a listing's cargo type. A
// subtype embedded in the note wins over the coarse API type.
func DetailedCargoType(note string, apiType constant.CargoTypeAPI) string {
	if subtype := ParseCargoTypeMarker(note); subtype != "" {
		return cargoSubtypeLabels[subtype]
	}
	if label, ok := cargoTypeLabels[apiType]; ok {
		return label
	}
	return cargoTypeLabels[constant.CargoTypeGeneral]
}

// SubtypeLabel returns the display name of a detailed subtype, empty for
// unknown values.
func SubtypeLabel(subtype string) string {
	return cargoSubtypeLabels[strings.ToLower(strings.TrimSpace(subtype))]
}
