package service

import (
	"errors"
	"strings"
	"time"

	"OrgLink/internal/modules/user/application/dto/request"
	"OrgLink/internal/modules/user/application/dto/respond"
	"OrgLink/internal/modules/user/domain/entity"
	"OrgLink/internal/modules/user/domain/repository"
	"OrgLink/pkg/util"
	"OrgLink/pkg/util/myjwt"
	"OrgLink/pkg/xerr"
	"OrgLink/pkg/zlog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserInfoService 接口定义 (Application Service)
type UserInfoService interface {
	Register(registerReq request.RegisterRequest) (*respond.RegisterRespond, error)
	Login(loginReq request.LoginRequest) (*respond.LoginRespond, error)
}

type userInfoServiceImpl struct {
	repo repository.UserInfoRepository
}

// NewUserInfoService 构造函数
func NewUserInfoService(repo repository.UserInfoRepository) UserInfoService {
	return &userInfoServiceImpl{repo: repo}
}

func (u *userInfoServiceImpl) Register(registerReq request.RegisterRequest) (*respond.RegisterRespond, error) {
	registerReq.Username = strings.TrimSpace(registerReq.Username)
	if registerReq.Username == "" || registerReq.Password == "" || registerReq.OrgUuid == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	// 1. 检查用户名是否已存在
	_, err := u.repo.GetUserInfoByUsername(registerReq.Username)
	if err == nil {
		return nil, xerr.New(xerr.BadRequest, "用户已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(registerReq.Password), bcrypt.DefaultCost)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	newUser := entity.UserInfo{
		Uuid:      util.GenerateUUID(),
		Username:  registerReq.Username,
		Nickname:  registerReq.Nickname,
		Password:  string(hashed),
		OrgUuid:   registerReq.OrgUuid,
		Status:    entity.UserStatusNormal,
		IsAdmin:   0,
		CreatedAt: time.Now(),
	}
	if err := u.repo.CreateUserInfo(&newUser); err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.RegisterRespond{
		Uuid:     newUser.Uuid,
		Username: newUser.Username,
		Nickname: newUser.Nickname,
		OrgUuid:  newUser.OrgUuid,
	}, nil
}

func (u *userInfoServiceImpl) Login(loginReq request.LoginRequest) (*respond.LoginRespond, error) {
	if loginReq.Username == "" || loginReq.Password == "" {
		return nil, xerr.New(xerr.BadRequest, xerr.ErrParam.Message)
	}

	user, err := u.repo.GetUserInfoByUsername(strings.TrimSpace(loginReq.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.New(xerr.Unauthorized, "用户名或密码错误")
		}
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}
	if user.Status != entity.UserStatusNormal {
		return nil, xerr.New(xerr.Forbidden, "账号已被禁用")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginReq.Password)); err != nil {
		return nil, xerr.New(xerr.Unauthorized, "用户名或密码错误")
	}

	token, err := myjwt.GenerateToken(user.Uuid, user.Username, user.OrgUuid)
	if err != nil {
		zlog.Error(err.Error())
		return nil, xerr.ErrServerError
	}

	return &respond.LoginRespond{
		Uuid:     user.Uuid,
		Username: user.Username,
		Nickname: user.Nickname,
		OrgUuid:  user.OrgUuid,
		Token:    token,
	}, nil
}
