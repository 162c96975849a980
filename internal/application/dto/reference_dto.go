package dto

// DistrictResponse distrito para listas desplegables.
type DistrictResponse struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// CommodityCodeResponse código de commodity para listas desplegables.
type CommodityCodeResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// FormReferences datos de referencia que necesita un formulario para pintarse.
type FormReferences struct {
	Districts      []DistrictResponse      `json:"districts"`
	CommodityCodes []CommodityCodeResponse `json:"commodity_codes"`
}
