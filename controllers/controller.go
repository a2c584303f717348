package controllers

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vnkhanh/elearning-backend/logger"
	"github.com/vnkhanh/elearning-backend/services"
	"github.com/vnkhanh/elearning-backend/store"
	"github.com/vnkhanh/elearning-backend/utils"
	"github.com/vnkhanh/elearning-backend/ws"
)

const (
	courseFolder  = "courses"
	studentFolder = "students"
)

type Options struct {
	Store            *store.Store
	Files            utils.FileStorage
	Tokens           *utils.TokenManager
	Payment          services.PaymentGateway
	Mailer           utils.Mailer
	Hub              *ws.Hub
	Log              *logger.Logger
	SignupPrice      int64
	PaymentFinishURL string
	PasswordCost     int
}

// Controller gom các handler HTTP và những gì chúng dùng chung.
type Controller struct {
	store            *store.Store
	files            utils.FileStorage
	tokens           *utils.TokenManager
	payment          services.PaymentGateway
	mailer           utils.Mailer
	hub              *ws.Hub
	log              *logger.Logger
	signupPrice      int64
	paymentFinishURL string
	passwordCost     int
}

func New(o Options) *Controller {
	cost := o.PasswordCost
	if cost == 0 {
		cost = 12
	}
	return &Controller{
		store:            o.Store,
		files:            o.Files,
		tokens:           o.Tokens,
		payment:          o.Payment,
		mailer:           o.Mailer,
		hub:              o.Hub,
		log:              o.Log,
		signupPrice:      o.SignupPrice,
		paymentFinishURL: o.PaymentFinishURL,
		passwordCost:     cost,
	}
}

func (h *Controller) hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
