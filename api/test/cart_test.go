package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/avelara/storefront/core/cart"
	"github.com/avelara/storefront/core/product"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

type cartView struct {
	Message string      `json:"message"`
	Items   []cart.Line `json:"items"`
	Pricing struct {
		Subtotal string `json:"subtotal"`
		Tax      string `json:"tax"`
		Shipping string `json:"shipping"`
		Total    string `json:"total"`
	} `json:"pricing"`
}

type productTest struct {
	*TestEnv
}

func (pt *productTest) createProductOK(t *testing.T, price string, stock int) product.Product {
	t.Helper()

	body := map[string]any{
		"name":  gofakeit.ProductName(),
		"price": price,
		"stock": stock,
	}

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}

	w, err := pt.Client().Post(pt.URL+"/products", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	if w.StatusCode != http.StatusCreated {
		t.Fatalf("can't create product: status code %s", w.Status)
	}

	var prd product.Product
	if err := json.NewDecoder(w.Body).Decode(&prd); err != nil {
		t.Fatalf("cannot unmarshal created product: %v", err)
	}
	return prd
}

type cartTest struct {
	*TestEnv
}

func (rt *cartTest) do(t *testing.T, method, path string, body any) (*http.Response, cartView) {
	t.Helper()

	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	r, err := http.NewRequest(method, rt.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}

	w, err := rt.Client().Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Body.Close()

	var v cartView
	_ = json.NewDecoder(w.Body).Decode(&v)
	return w, v
}

func (rt *cartTest) addItemOK(t *testing.T, productID int64, qty int) cartView {
	t.Helper()

	w, v := rt.do(t, http.MethodPut, "/cart/items", map[string]any{"productId": productID, "quantity": qty})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't add item to cart: status code %s", w.Status)
	}
	return v
}

func (rt *cartTest) showOK(t *testing.T) cartView {
	t.Helper()

	w, v := rt.do(t, http.MethodGet, "/cart", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't show cart: status code %s", w.Status)
	}
	return v
}

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	pt := &productTest{env}
	rt := &cartTest{env}

	p1 := pt.createProductOK(t, "49.99", 5)
	p2 := pt.createProductOK(t, "29.99", 8)

	// Two adds of the same product end up in a single merged line.
	rt.addItemOK(t, p1.ID, 1)
	v := rt.addItemOK(t, p1.ID, 2)
	if len(v.Items) != 1 || v.Items[0].Quantity != 3 {
		t.Fatalf("expected one line with quantity 3, got %+v", v.Items)
	}

	// Pushing past the stock snapshot is rejected and leaves the cart be.
	w, _ := rt.do(t, http.MethodPut, "/cart/items", map[string]any{"productId": p1.ID, "quantity": 3})
	if w.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on over-stock add, got %s", w.Status)
	}
	if v := rt.showOK(t); v.Items[0].Quantity != 3 {
		t.Fatalf("cart changed after rejected add: %+v", v.Items)
	}

	v = rt.addItemOK(t, p2.ID, 2)
	if len(v.Items) != 2 {
		t.Fatalf("expected two lines, got %+v", v.Items)
	}

	// 3 x 49.99 + 2 x 29.99 = 209.95; +10% tax +5.99 shipping.
	if v.Pricing.Subtotal != "209.95" || v.Pricing.Total != "236.94" {
		t.Fatalf("unexpected pricing: %+v", v.Pricing)
	}

	// Quantity below 1 is a deliberate no-op.
	path := fmt.Sprintf("/cart/items/%d", p1.ID)
	w, v = rt.do(t, http.MethodPut, path, map[string]any{"quantity": 0})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on no-op update, got %s", w.Status)
	}
	if v.Items[0].Quantity != 3 {
		t.Fatalf("no-op update changed quantity: %+v", v.Items)
	}

	w, v = rt.do(t, http.MethodPut, path, map[string]any{"quantity": 5})
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't update quantity: status code %s", w.Status)
	}
	if v.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", v.Items)
	}

	// Removing an id that is not in the cart changes nothing.
	w, v = rt.do(t, http.MethodDelete, "/cart/items/424242", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on absent remove, got %s", w.Status)
	}
	if len(v.Items) != 2 {
		t.Fatalf("absent remove changed the cart: %+v", v.Items)
	}

	w, v = rt.do(t, http.MethodDelete, path, nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't remove item: status code %s", w.Status)
	}
	if len(v.Items) != 1 || v.Items[0].ProductID != p2.ID {
		t.Fatalf("unexpected cart after remove: %+v", v.Items)
	}

	w, v = rt.do(t, http.MethodDelete, "/cart", nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("can't clear cart: status code %s", w.Status)
	}
	if len(v.Items) != 0 {
		t.Fatalf("cart not empty after clear: %+v", v.Items)
	}

	// The line keeps the price snapshot from add time.
	v = rt.addItemOK(t, p2.ID, 1)
	if !v.Items[0].UnitPrice.Equal(decimal.RequireFromString("29.99")) {
		t.Fatalf("unexpected unit price snapshot: %s", v.Items[0].UnitPrice)
	}
}
