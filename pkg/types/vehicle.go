package types

type VehicleType string

const (
	VehicleTypeCar   VehicleType = "car"
	VehicleTypeTruck VehicleType = "truck"
	VehicleTypeBike  VehicleType = "bike"
	VehicleTypeBus   VehicleType = "bus"
	VehicleTypeOther VehicleType = "other"
)

func (t VehicleType) Valid() bool {
	switch t {
	case VehicleTypeCar, VehicleTypeTruck, VehicleTypeBike, VehicleTypeBus, VehicleTypeOther:
		return true
	}
	return false
}
