package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	nethttp "net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rentalops/internal/domain/entity"
)

//go:embed views
var viewsFS embed.FS

// DefaultLayout layout de las páginas de sección.
const DefaultLayout = "layouts/main"

var statusLabels = map[string]string{
	entity.RentalStatusSubmitted: "Enviada",
	entity.RentalStatusOrdered:   "Con orden de compra",
	entity.RentalStatusCancelled: "Cancelada",
	entity.PurchaseOrderPending:  "Pendiente",
	entity.PurchaseOrderApproved: "Aprobada",
	entity.PurchaseOrderRejected: "Rechazada",
}

// NewViewEngine motor de plantillas sobre las vistas embebidas.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(nethttp.FS(sub), ".html")
	engine.AddFuncMap(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006")
		},
		"datetime": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
		"dict": dict,
		"status": func(s string) string {
			if l, ok := statusLabels[s]; ok {
				return l
			}
			return s
		},
	})
	return engine
}

// dict arma un mapa con pares clave/valor para pasar varios datos a un partial.
func dict(kv ...any) (map[string]any, error) {
	if len(kv)%2 != 0 {
		return nil, errors.New("dict: cantidad impar de argumentos")
	}
	m := make(map[string]any, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: la clave %v no es string", kv[i])
		}
		m[k] = kv[i+1]
	}
	return m, nil
}
