package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"sambhai-backend/internal/models"
)

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		mobile := strings.TrimSpace(req.Mobile)
		name := strings.TrimSpace(req.Name)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"mobile": mobile})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register mobile exists:", mobile)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number already registered"})
			return
		}

		count, err = db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("[AUTH] [ERROR] register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			log.Println("[AUTH] [ERROR] register email exists:", email)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		user := models.User{
			Name:         name,
			Email:        email,
			Mobile:       mobile,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Mobile number already registered"})
				return
			}
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		token, err := issueToken(id, email, "user", jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", email)
		c.JSON(http.StatusCreated, gin.H{
			"accessToken": token,
			"user": gin.H{
				"id":     id.Hex(),
				"name":   name,
				"email":  email,
				"mobile": mobile,
			},
		})
	}
}

func Login(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, db)
		if !ok {
			return
		}

		token, err := issueToken(user.ID, user.Email, "user", jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken": token,
			"user": gin.H{
				"id":      user.ID.Hex(),
				"name":    user.Name,
				"email":   user.Email,
				"mobile":  user.Mobile,
				"isAdmin": user.IsAdmin,
			},
		})
	}
}

// AdminLogin is the same credential check restricted to isAdmin accounts; the
// issued token carries the admin role for the route guard.
func AdminLogin(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authenticate(c, db)
		if !ok {
			return
		}

		if !user.IsAdmin {
			log.Println("[AUTH] [ERROR] admin login rejected for non-admin:", user.Email)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		token, err := issueToken(user.ID, user.Email, "admin", jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] admin login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] admin login succeeded:", user.Email)
		c.JSON(http.StatusOK, gin.H{
			"accessToken": token,
			"user": gin.H{
				"id":    user.ID.Hex(),
				"name":  user.Name,
				"email": user.Email,
			},
		})
	}
}

func authenticate(c *gin.Context, db *mongo.Database) (models.User, bool) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return models.User{}, false
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return models.User{}, false
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] login lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return models.User{}, false
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return models.User{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Println("[AUTH] [ERROR] login invalid credentials:", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return models.User{}, false
	}

	return user, true
}

func issueToken(userID primitive.ObjectID, email, role, secret string, accessTTL time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"email":  email,
		"role":   role,
		"exp":    time.Now().Add(accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
