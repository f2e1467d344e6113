package types

type ReminderType string

const (
	ReminderTypeMaintenance  ReminderType = "maintenance"
	ReminderTypeInsurance    ReminderType = "insurance"
	ReminderTypeRegistration ReminderType = "registration"
	ReminderTypeService      ReminderType = "service"
	ReminderTypeOilChange    ReminderType = "oil_change"
	ReminderTypeTireRotation ReminderType = "tire_rotation"
	ReminderTypeOther        ReminderType = "other"
)
