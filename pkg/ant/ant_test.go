package ant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sw33tLie/platescope/pkg/plate"
	"github.com/sw33tLie/platescope/pkg/vehicle"
	"github.com/sw33tLie/platescope/pkg/whttp"
)

const vehiclePage = `<html><head><title>Consulta</title></head><body>
<table border="0" cellspacing="1" cellpadding="2">
  <tr><td class="titulo">Marca:</td><td class="detalle_formulario">CHEVROLET</td>
      <td class="titulo">Color:</td><td class="detalle_formulario">PLATEADO</td></tr>
  <tr><td class="titulo">Año de Matrícula:</td><td class="detalle_formulario">2023</td>
      <td class="titulo">Modelo:</td><td class="detalle_formulario"> AVEO  FAMILY </td></tr>
  <tr><td class="titulo">Clase:</td><td class="detalle_formulario">AUTOMOVIL</td>
      <td class="titulo">Fecha de Matrícula:</td><td class="detalle_formulario">10-01-2023</td></tr>
  <tr><td class="titulo">Año:</td><td class="detalle_formulario">2012</td>
      <td class="titulo">Servicio:</td><td class="detalle_formulario">PARTICULAR</td></tr>
  <tr><td class="titulo">Fecha de Caducidad:</td><td class="detalle_formulario">10-01-2024</td></tr>
  <tr><td class="titulo">Ignorado:</td></tr>
</table></body></html>`

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	hc, err := whttp.NewClient(whttp.ClientOptions{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatal(err)
	}
	return NewClient(hc, srv.URL)
}

func TestLookupFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ps_identificacion"); got != "PBX0123" {
			t.Errorf("queried %q", got)
		}
		if got := r.URL.Query().Get("ps_tipo_identificacion"); got != "PLA" {
			t.Errorf("identification type %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(vehiclePage))
	})

	rec, err := c.Lookup(context.Background(), "pbx-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := vehicle.Record{
		Plate:            "PBX0123",
		Make:             "CHEVROLET",
		Model:            "AVEO FAMILY",
		Year:             "2012",
		Color:            "PLATEADO",
		Class:            "AUTOMOVIL",
		RegistrationDate: "10-01-2023",
		RegistrationYear: "2023",
		Service:          "PARTICULAR",
		ExpiryDate:       "10-01-2024",
		Tint:             vehicle.NoTintRecord,
	}
	if rec != want {
		t.Fatalf("got %+v\nwant %+v", rec, want)
	}
}

func TestLookupNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>No se encontraron datos</p></body></html>`))
	})
	if _, err := c.Lookup(context.Background(), "ABC0001"); !errors.Is(err, vehicle.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupServiceError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`<html><head><title>Forbidden</title></head></html>`))
	})
	_, err := c.Lookup(context.Background(), "ABC0001")
	var lerr *vehicle.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LookupError, got %v", err)
	}
	if lerr.Plate != "ABC0001" {
		t.Fatalf("error plate %q", lerr.Plate)
	}
}

func TestLookupTransportError(t *testing.T) {
	hc, err := whttp.NewClient(whttp.ClientOptions{Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	c := NewClient(hc, "http://127.0.0.1:1/nothing")
	_, err = c.Lookup(context.Background(), "ABC0001")
	var lerr *vehicle.LookupError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected LookupError, got %v", err)
	}
}

func TestLookupRejectsMalformedPlate(t *testing.T) {
	c := NewClient(nil, "")
	if _, err := c.Lookup(context.Background(), "ab12"); !errors.Is(err, plate.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
}
