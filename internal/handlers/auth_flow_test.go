package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"golang.org/x/crypto/bcrypt"
)

func jsonRequestContext(method, path, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, path, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, recorder
}

func TestRegisterRejectsDuplicateMobile(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate mobile", func(mt *mtest.T) {
		// The mobile count comes back 1, so the handler bails before the email
		// check and the insert.
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: 1}, {Key: "n", Value: 1}}))

		c, recorder := jsonRequestContext("POST", "/api/register",
			`{"name":"Asha","email":"asha@example.com","mobile":"9876543210","password":"hunter22"}`)

		Register(mt.DB, "secret", time.Hour)(c)

		if recorder.Code != 400 {
			mt.Fatalf("expected 400 for duplicate mobile, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "Mobile number already registered") {
			mt.Fatalf("unexpected body: %s", recorder.Body.String())
		}
	})
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("wrong password", func(mt *mtest.T) {
		hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		if err != nil {
			mt.Fatalf("bcrypt: %v", err)
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Asha"},
			{Key: "email", Value: "asha@example.com"},
			{Key: "passwordHash", Value: string(hash)},
		}))

		c, recorder := jsonRequestContext("POST", "/api/login",
			`{"email":"asha@example.com","password":"wrong-password"}`)

		Login(mt.DB, "secret", time.Hour)(c)

		if recorder.Code != 401 {
			mt.Fatalf("expected 401 for wrong password, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "Invalid email or password") {
			mt.Fatalf("unexpected body: %s", recorder.Body.String())
		}
	})

	mt.Run("unknown email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.users", mtest.FirstBatch))

		c, recorder := jsonRequestContext("POST", "/api/login",
			`{"email":"nobody@example.com","password":"whatever1"}`)

		Login(mt.DB, "secret", time.Hour)(c)

		if recorder.Code != 401 {
			mt.Fatalf("expected 401 for unknown email, got %d", recorder.Code)
		}
		if !strings.Contains(recorder.Body.String(), "Invalid email or password") {
			mt.Fatalf("unexpected body: %s", recorder.Body.String())
		}
	})
}
