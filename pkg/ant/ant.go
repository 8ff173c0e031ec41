// Package ant queries the national transit agency portal for the vehicle
// registered under a plate.
package ant

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/vehicle"
	"github.com/sw33tLie/platescope/pkg/whttp"
)

const DEFAULT_URL = "https://consultaweb.ant.gob.ec/PortalWEB/paginas/clientes/clp_grid_citaciones.jsp"

// Labels shown by the portal next to each value.
const (
	labelMake             = "Marca"
	labelModel            = "Modelo"
	labelYear             = "Año"
	labelColor            = "Color"
	labelClass            = "Clase"
	labelRegistrationDate = "Fecha de Matrícula"
	labelRegistrationYear = "Año de Matrícula"
	labelService          = "Servicio"
	labelExpiryDate       = "Fecha de Caducidad"
	labelTint             = "Polarizado"
)

// Client looks plates up on the portal.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

// NewClient returns a client for the portal at baseURL (DEFAULT_URL when empty).
func NewClient(httpClient *retryablehttp.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DEFAULT_URL
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

// Lookup returns the record registered under p. It returns vehicle.ErrNotFound
// when the portal answers without a vehicle and a *vehicle.LookupError when the
// portal cannot be queried.
func (c *Client) Lookup(ctx context.Context, p string) (vehicle.Record, error) {
	normalized, err := plate.Normalize(p)
	if err != nil {
		return vehicle.Record{}, err
	}

	q := url.Values{}
	q.Set("ps_tipo_identificacion", "PLA")
	q.Set("ps_identificacion", normalized)
	q.Set("ps_placa", "")

	res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{
		Method: "GET",
		URL:    c.baseURL + "?" + q.Encode(),
	}, c.http)
	if err != nil {
		return vehicle.Record{}, &vehicle.LookupError{Plate: normalized, Err: err}
	}
	if res.StatusCode >= 400 {
		return vehicle.Record{}, &vehicle.LookupError{
			Plate: normalized,
			Err:   fmt.Errorf("portal answered %d %q", res.StatusCode, res.HTTPTitle),
		}
	}

	fields, err := parseVehicleTable(res.BodyString)
	if err != nil {
		return vehicle.Record{}, &vehicle.LookupError{Plate: normalized, Err: err}
	}
	if len(fields) == 0 {
		return vehicle.Record{}, vehicle.ErrNotFound
	}

	tint := fields[labelTint]
	if tint == "" {
		tint = vehicle.NoTintRecord
	}

	return vehicle.Record{
		Plate:            normalized,
		Make:             fields[labelMake],
		Model:            fields[labelModel],
		Year:             fields[labelYear],
		Color:            fields[labelColor],
		Class:            fields[labelClass],
		RegistrationDate: fields[labelRegistrationDate],
		RegistrationYear: fields[labelRegistrationYear],
		Service:          fields[labelService],
		ExpiryDate:       fields[labelExpiryDate],
		Tint:             tint,
	}, nil
}

// parseVehicleTable reads the label/value pairs of the vehicle data table.
// A page without the table yields no fields.
func parseVehicleTable(body string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, errors.New("failed to parse HTML")
	}

	fields := make(map[string]string)
	table := doc.Find(`table[border="0"][cellspacing="1"][cellpadding="2"]`).First()
	if table.Length() == 0 {
		return fields, nil
	}

	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		titles := row.Find("td.titulo")
		details := row.Find("td.detalle_formulario")
		if titles.Length() != details.Length() {
			return
		}
		titles.Each(func(i int, title *goquery.Selection) {
			key := strings.TrimSpace(strings.ReplaceAll(cleanText(title), ":", ""))
			if key == "" {
				return
			}
			fields[key] = cleanText(details.Eq(i))
		})
	})
	return fields, nil
}

func cleanText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}
