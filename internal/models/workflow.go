package models

// WorkflowStatus is the 3-state progress marker staff use on the kitchen
// board. The integer values are persisted as-is and must stay 1/2/3.
type WorkflowStatus int

const (
	StatusPending    WorkflowStatus = 1
	StatusInProgress WorkflowStatus = 2
	StatusCompleted  WorkflowStatus = 3
)

// Valid reports whether s is one of the three board states.
func (s WorkflowStatus) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

// ColumnName returns the board column label shown to staff.
func (s WorkflowStatus) ColumnName() string {
	switch s {
	case StatusPending:
		return "Att Göra"
	case StatusInProgress:
		return "Pågår"
	case StatusCompleted:
		return "Klar"
	}
	return "Okänd"
}

// DeliveryType selects how the customer receives the goods.
type DeliveryType int

const (
	DeliveryPickup       DeliveryType = 0
	DeliveryHomeDelivery DeliveryType = 1
)

// CakeSize enumerates the orderable cake sizes.
type CakeSize int

const (
	SizeSixPieces    CakeSize = 0
	SizeEightPieces  CakeSize = 1
	SizeTwelvePieces CakeSize = 2
	SizeLargerOrder  CakeSize = 3
)

// CakeFlavor enumerates the cake flavors. FlavorCustom carries a free-text
// companion note in the inquiry description.
type CakeFlavor int

const (
	FlavorChocolate  CakeFlavor = 0
	FlavorRaspberry  CakeFlavor = 1
	FlavorVanilla    CakeFlavor = 2
	FlavorStrawberry CakeFlavor = 3
	FlavorLemon      CakeFlavor = 4
	FlavorCustom     CakeFlavor = 5
)
