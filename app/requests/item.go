package requests

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/pkg/validate"
)

// ItemCreate is a validated item body.
type ItemCreate struct {
	Name     string  `json:"name"     validate:"required"`
	Price    string  `json:"price"    validate:"required,numeric,gte=0"`
	Category string  `json:"category" validate:"required"`
	Status   string  `json:"status"   validate:"nullable,in=ACTIVE,INACTIVE"`
	Amount   float64 `json:"-"`
}

// NewItemCreate validates an item body. Price may be a JSON number or a
// numeric string and must be finite and non-negative. An unknown status
// falls back to ACTIVE rather than failing.
func NewItemCreate(raw map[string]any) (ItemCreate, error) {
	in := ItemCreate{}
	in.Name, _ = trimmed(raw, "name")
	in.Category, _ = trimmed(raw, "category")

	priceOK := true
	if v, ok := first(raw, "price"); ok {
		switch v.(type) {
		case string, float64, json.Number:
			in.Price = strings.TrimSpace(text(v))
		default:
			in.Price = text(v)
			priceOK = false
		}
	}

	if v, ok := first(raw, "status"); ok {
		in.Status = strings.ToUpper(strings.TrimSpace(text(v)))
	}

	errs := validate.Struct(in)
	if missing := errs.Fields("required"); len(missing) > 0 {
		return ItemCreate{}, &ValidationError{
			Message: "Missing required fields: name, price, category",
			Missing: missing,
		}
	}
	if !priceOK || len(errs.Fields("numeric", "gte")) > 0 {
		return ItemCreate{}, &ValidationError{
			Message: "price must be a number",
			Invalid: []string{"price"},
		}
	}
	in.Amount, _ = strconv.ParseFloat(in.Price, 64)

	if in.Status == "" || len(errs.Fields("in")) > 0 {
		in.Status = models.ItemActive
	}
	return in, nil
}
