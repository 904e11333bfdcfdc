package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"sambhai-backend/internal/mailer"
)

// The checkout-session route rejects an empty item list; order placement does
// not, it persists the document as submitted.
func TestPlaceOrderAcceptsEmptyItemList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty items", func(mt *mtest.T) {
		// One response for the connectivity ping, one for the insert.
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())

		c, recorder := jsonRequestContext("POST", "/api/orders/place",
			`{"name":"Asha","email":"asha@example.com","mobile":"9876543210","address":"12 Lane","items":[],"amount":0,"paymentMethod":"Cash on Delivery"}`)

		PlaceOrder(mt.DB, "secret", mailer.New("", 0, "", "", ""))(c)

		if recorder.Code != 201 {
			mt.Fatalf("expected 201 for empty item list, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})
}
