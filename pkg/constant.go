package pkg

// enum of risk_level attached to every exported record
type RiskLevel uint8

const (
	LOW_RISK RiskLevel = iota
	MEDIUM_RISK
	HIGH_RISK
)

func (r RiskLevel) String() string {
	switch r {
	case HIGH_RISK:
		return "High Risk"
	case MEDIUM_RISK:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}

// enum of turn_type emitted by the turn classifier
type TurnClass uint8

const (
	NORMAL_TURN TurnClass = iota
	SHARP_TURN
	BLIND_SPOT
)

func (t TurnClass) String() string {
	switch t {
	case BLIND_SPOT:
		return "Blind Spot"
	case SHARP_TURN:
		return "Turn"
	default:
		return "Normal"
	}
}

type PlaceCategory uint8

// enum of place category returned by the places collaborator:
// https://developers.google.com/maps/documentation/places/web-service/place-types
const (
	HOSPITAL PlaceCategory = iota
	POLICE
	GAS_STATION
	TRAIN_STATION
	UNKNOWN_PLACE
)

func (p PlaceCategory) String() string {
	switch p {
	case HOSPITAL:
		return "Hospital"
	case POLICE:
		return "Police"
	case GAS_STATION:
		return "Gas_station"
	case TRAIN_STATION:
		return "Train_station"
	default:
		return "Place"
	}
}

func GetPlaceCategory(placeType string) PlaceCategory {
	switch placeType {
	case "hospital":
		return HOSPITAL
	case "police", "police_station":
		return POLICE
	case "gas_station", "fuel":
		return GAS_STATION
	case "train_station", "station":
		return TRAIN_STATION
	default:
		return UNKNOWN_PLACE
	}
}

const (
	SHARP_TURN_ANGLE_DEGREE = 35.0
	BLIND_SPOT_ANGLE_DEGREE = 60.0

	POI_MATCH_RADIUS_METER     = 100.0
	PLACES_LOOKUP_RADIUS_METER = 1000.0
	PLACES_SAMPLING_STRIDE     = 10

	SNAP_TO_ROADS_CHUNK_SIZE = 100
)

const (
	DEBUG = false
)
