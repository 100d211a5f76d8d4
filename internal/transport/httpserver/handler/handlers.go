package handler

import (
	familydomain "family-talk-go/internal/domain/family"
	messagedomain "family-talk-go/internal/domain/message"
	scheduledomain "family-talk-go/internal/domain/schedule"
	userdomain "family-talk-go/internal/domain/user"
	"family-talk-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	Users     *userdomain.Service
	Families  *familydomain.Service
	Messages  *messagedomain.Service
	Schedules *scheduledomain.Service

	log      logger.Logger
	validate *validator.Validate
}

func New(users *userdomain.Service, families *familydomain.Service, messages *messagedomain.Service, schedules *scheduledomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:     users,
		Families:  families,
		Messages:  messages,
		Schedules: schedules,
		log:       log,
		validate:  validator.New(),
	}
}
