package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildLineItemsRejectsEmptyList(t *testing.T) {
	if _, err := buildLineItems(nil); err == nil {
		t.Fatal("expected error for empty item list")
	}
	if _, err := buildLineItems([]checkoutItemRequest{}); err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestBuildLineItemsConvertsRupeesToPaise(t *testing.T) {
	lineItems, err := buildLineItems([]checkoutItemRequest{
		{Title: "Oversized Tee", Price: 499.50, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("buildLineItems returned error: %v", err)
	}
	if got := *lineItems[0].PriceData.UnitAmount; got != 49950 {
		t.Fatalf("expected unit amount 49950 paise, got %d", got)
	}
	if got := *lineItems[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
	if got := *lineItems[0].PriceData.Currency; got != "inr" {
		t.Fatalf("expected currency inr, got %s", got)
	}
}

func TestBuildLineItemsDefaultsQuantityToOne(t *testing.T) {
	lineItems, err := buildLineItems([]checkoutItemRequest{
		{Title: "Hoodie", Price: 1299},
	})
	if err != nil {
		t.Fatalf("buildLineItems returned error: %v", err)
	}
	if got := *lineItems[0].Quantity; got != 1 {
		t.Fatalf("expected default quantity 1, got %d", got)
	}
}

func TestCreateCheckoutSessionEmptyItemsReturns400(t *testing.T) {
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/create-checkout-session",
		bytes.NewBufferString(`{"items": []}`))
	c.Request.Header.Set("Content-Type", "application/json")

	CreateCheckoutSession("sk_test_dummy", "http://localhost/success", "http://localhost/cancel")(c)

	if recorder.Code != 400 {
		t.Fatalf("expected 400 for empty items, got %d", recorder.Code)
	}
}
