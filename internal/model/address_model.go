package model

type AddressType string

const (
	AddressHome   AddressType = "Home"
	AddressOffice AddressType = "Office"
	AddressOther  AddressType = "Other"
)

func (t AddressType) Valid() bool {
	switch t {
	case AddressHome, AddressOffice, AddressOther:
		return true
	}
	return false
}

type Address struct {
	ID          int64       `json:"id"`
	HouseNo     string      `json:"houseNo"`
	RoadName    string      `json:"roadName"`
	Landmark    string      `json:"landmark,omitempty"`
	PinCode     string      `json:"pinCode"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	AddressType AddressType `json:"addressType"`
	CreatedAt   string      `json:"created_at,omitempty"`
}

// AddressInput is an Address without the server-owned id and created_at.
type AddressInput struct {
	HouseNo     string      `json:"houseNo"`
	RoadName    string      `json:"roadName"`
	Landmark    string      `json:"landmark"`
	PinCode     string      `json:"pinCode"`
	City        string      `json:"city"`
	State       string      `json:"state"`
	AddressType AddressType `json:"addressType"`
}
