package fulfillment

import (
	"github.com/shopspring/decimal"
)

// The provider wraps every response in a {code, result, error} envelope.
// HTTP status classification happens before the envelope is decoded, so
// these types only model successful payload shapes plus the error message.

type apiError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Code  int       `json:"code"`
	Error *apiError `json:"error"`
	// Some endpoints report the failure as a bare string result
	Result any `json:"result"`
}

type mockupTaskEnvelope struct {
	Code   int             `json:"code"`
	Result mockupTaskModel `json:"result"`
}

type mockupTaskModel struct {
	TaskKey string        `json:"task_key"`
	Status  string        `json:"status"`
	Mockups []mockupModel `json:"mockups"`
	Error   string        `json:"error"`
}

type mockupModel struct {
	MockupURL string `json:"mockup_url"`
	Placement string `json:"placement"`
	VariantID int64  `json:"variant_id"`
}

type createTaskRequest struct {
	VariantIDs   []int64         `json:"variant_ids"`
	Format       string          `json:"format"`
	Options      []string        `json:"options,omitempty"`
	OptionGroups []string        `json:"option_groups,omitempty"`
	Files        []taskFileModel `json:"files"`
}

type taskFileModel struct {
	Placement string        `json:"placement"`
	ImageURL  string        `json:"image_url"`
	Position  positionModel `json:"position"`
}

type positionModel struct {
	AreaWidth  int `json:"area_width"`
	AreaHeight int `json:"area_height"`
	Width      int `json:"width"`
	Height     int `json:"height"`
	Top        int `json:"top"`
	Left       int `json:"left"`
}

type addressModel struct {
	Name        string `json:"name"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code"`
	Zip         string `json:"zip"`
}

type rateItemModel struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type ratesRequest struct {
	Recipient addressModel    `json:"recipient"`
	Items     []rateItemModel `json:"items"`
}

type ratesEnvelope struct {
	Code   int         `json:"code"`
	Result []rateModel `json:"result"`
}

type rateModel struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency"`
}

type orderItemModel struct {
	VariantID int64           `json:"variant_id"`
	Quantity  int             `json:"quantity"`
	Files     []orderFileItem `json:"files"`
}

type orderFileItem struct {
	URL string `json:"url"`
}

type retailCostsModel struct {
	Currency string `json:"currency"`
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
}

type createOrderRequest struct {
	Recipient   addressModel     `json:"recipient"`
	Items       []orderItemModel `json:"items"`
	RetailCosts retailCostsModel `json:"retail_costs"`
}

type orderEnvelope struct {
	Code   int        `json:"code"`
	Result orderModel `json:"result"`
}

type orderModel struct {
	ID        int64           `json:"id"`
	Status    string          `json:"status"`
	Shipments []shipmentModel `json:"shipments"`
}

type shipmentModel struct {
	TrackingNumber string `json:"tracking_number"`
	TrackingURL    string `json:"tracking_url"`
}

type productsEnvelope struct {
	Code   int            `json:"code"`
	Result []productModel `json:"result"`
}

type productModel struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Variants    []variantModel `json:"variants"`
}

type variantModel struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Size         string          `json:"size"`
	Color        string          `json:"color"`
	RetailPrice  decimal.Decimal `json:"retail_price"`
	Availability string          `json:"availability_status"`
}
