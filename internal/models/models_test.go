package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalAsNumber(t *testing.T) {
	data, err := json.Marshal(struct {
		Price Money `json:"preco"`
	}{Price: NewMoneyFromFloat(10)})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"preco":10.00}` {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestMoneyUnmarshalNumberAndString(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":18.5,"b":"7.999","c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.A.String() != "18.50" {
		t.Fatalf("unexpected a: %s", payload.A)
	}
	if payload.B.String() != "8.00" {
		t.Fatalf("unexpected b: %s", payload.B)
	}
	if !payload.C.IsZero() {
		t.Fatalf("null should decode to zero, got %s", payload.C)
	}
}

func TestCartDerivedValues(t *testing.T) {
	cart := Cart{
		{ProductID: 1, Name: "Café", Price: MustParseMoney("10.00"), Quantity: 3},
		{ProductID: 2, Name: "Pão", Price: MustParseMoney("5.25"), Quantity: 2},
	}
	if cart.ItemCount() != 5 {
		t.Fatalf("expected 5 items, got %d", cart.ItemCount())
	}
	if !cart.Subtotal().Equal(NewMoneyFromDecimal(decimal.RequireFromString("40.50"))) {
		t.Fatalf("unexpected subtotal: %s", cart.Subtotal())
	}
}

func TestCartNormalizeMergesAndDrops(t *testing.T) {
	cart := Cart{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 0},
		{ProductID: 1, Quantity: 2},
		{ProductID: 0, Quantity: 4},
		{ProductID: 3, Quantity: -1},
	}
	got := cart.Normalize()
	if len(got) != 1 || got[0].ProductID != 1 || got[0].Quantity != 3 {
		t.Fatalf("unexpected normalized cart: %+v", got)
	}
}

func TestBuildOrderPayload(t *testing.T) {
	cart := Cart{{ProductID: 9, Name: "Vela", Price: MustParseMoney("15.75"), Quantity: 2}}
	payload := BuildOrderPayload("maria", 4, cart, "pix", "entregar cedo")
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"vendedor":"maria","clienteId":4,"itens":[{"idProduto":9,"nome":"Vela","preco":15.75,"quantidade":2}],"total":31.50,"pagamento":"pix","observacao":"entregar cedo"}`
	if string(data) != want {
		t.Fatalf("unexpected payload:\n got=%s\nwant=%s", data, want)
	}
}

func TestOrderConfirmationIDAcceptsNumberOrString(t *testing.T) {
	cases := map[string]string{
		`{"id":42}`:               "42",
		`{"id":"PED-42"}`:         "PED-42",
		`{"id":" 7 "}`:            "7",
		`{"id":null}`:             "",
		`{"total":1.5}`:           "",
		`{"id":1.0e3}`:            "1.0e3",
		`{"id":9007199254740993}`: "9007199254740993",
	}
	for body, want := range cases {
		var confirmation OrderConfirmation
		if err := json.Unmarshal([]byte(body), &confirmation); err != nil {
			t.Fatalf("unmarshal %s failed: %v", body, err)
		}
		if got := confirmation.ID.String(); got != want {
			t.Fatalf("id for %s want %q got %q", body, want, got)
		}
	}

	var confirmation OrderConfirmation
	if err := json.Unmarshal([]byte(`{"id":true}`), &confirmation); err == nil {
		t.Fatalf("boolean id should be rejected")
	}
}
