package entity

// CommodityCode código de commodity (clasificación de compra) usado en rentas y órdenes de compra.
type CommodityCode struct {
	Code        string
	Description string
	Category    string
	Active      bool
}
