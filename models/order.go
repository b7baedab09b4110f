package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one line of an order. Name and unit price are copied from the
// dish at checkout so later menu edits do not change past orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" bson:"-" json:"-"`
	OrderID   string  `gorm:"column:pedido_id;type:varchar(36);not null;index" bson:"-" json:"-"`
	Position  int     `gorm:"column:posicion;not null" bson:"-" json:"-"`
	DishID    string  `gorm:"column:plato_id;type:varchar(36);not null" bson:"platoId" json:"platoId"`
	Name      string  `gorm:"column:nombre;type:varchar(255);not null" bson:"nombre" json:"nombre"`
	UnitPrice float64 `gorm:"column:precio_unitario;type:decimal(10,2);not null" bson:"precioUnitario" json:"precioUnitario"`
	Quantity  int     `gorm:"column:cantidad;not null" bson:"cantidad" json:"cantidad"`
}

func (OrderItem) TableName() string {
	return "pedido_items"
}

// Order ("pedido") is written once at checkout and never updated.
type Order struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" bson:"-" json:"_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" bson:"items" json:"items"`
	Total     float64     `gorm:"type:decimal(12,2);not null" bson:"total" json:"total"`
	UserID    *string     `gorm:"column:usuario_id;type:varchar(100);index" bson:"usuarioId,omitempty" json:"usuarioId,omitempty"`
	CreatedAt time.Time   `gorm:"index" bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

func (Order) TableName() string {
	return "pedidos"
}

// ComputeTotal sums unit price x quantity over all lines using decimal
// arithmetic and stores the result rounded to cents.
func (o *Order) ComputeTotal() float64 {
	total := decimal.Zero
	for _, item := range o.Items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	o.Total, _ = total.Round(2).Float64()
	return o.Total
}
