package handler

import (
	"github.com/bagdasarian/docspace-access/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	userService       service.UserService
	membershipService service.MembershipService
	commentService    service.CommentService
	activityService   service.ActivityService
	log               *logrus.Logger
}

func NewHandler(
	userService service.UserService,
	membershipService service.MembershipService,
	commentService service.CommentService,
	activityService service.ActivityService,
	log *logrus.Logger,
) *Handler {
	return &Handler{
		userService:       userService,
		membershipService: membershipService,
		commentService:    commentService,
		activityService:   activityService,
		log:               log,
	}
}
