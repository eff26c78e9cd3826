package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/config"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	inOtel "github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/user/internal/common/cache"
	"github.com/Alturino/storefront/user/internal/common/otel"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

type UserService struct {
	pool     *pgxpool.Pool
	queries  *repository.Queries
	cache    *redis.Client
	sessions *session.Manager
	config   config.Application
}

func NewUserService(
	pool *pgxpool.Pool,
	queries *repository.Queries,
	cache *redis.Client,
	sessions *session.Manager,
	config config.Application,
) UserService {
	return UserService{
		pool:     pool,
		queries:  queries,
		cache:    cache,
		sessions: sessions,
		config:   config,
	}
}

func (s UserService) Register(
	c context.Context,
	param request.Register,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking email").Logger()
	logger.Info().Msg("checking email is not registered")
	_, err := s.queries.FindUserByEmail(c, param.Email)
	if err == nil {
		err = inErrors.Validation("Email is already registered.")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed checking email with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("checked email is not registered")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user to database").Logger()
	logger.Info().Msg("inserting user to database")
	now := time.Now()
	user, err := s.queries.InsertUser(c, repository.InsertUserParams{
		Username:  param.Username,
		Email:     param.Email,
		Password:  string(hashed),
		Role:      "customer",
		CreatedAt: pgtype.Timestamp{Time: now, Valid: true},
		UpdatedAt: pgtype.Timestamp{Time: now, Valid: true},
	})
	if err != nil {
		err = fmt.Errorf("failed inserting user to database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("inserted user to database")

	return response.NewUser(user), nil
}

func (s UserService) Login(c context.Context, param request.Login) (response.Login, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user by email").Logger()
	logger.Info().Msg("finding user by email")
	user, err := s.queries.FindUserByEmail(c, param.Email)
	if err != nil {
		err = inErrors.Validation("Invalid email or password.")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeyUserID, user.ID.String()).Logger()
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		err = inErrors.Validation("Invalid email or password.")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(log.KeyProcess, "creating login token").Logger()
	logger.Info().Msg("creating login token")
	tokenCreationTime := time.Now()
	expiresAt := tokenCreationTime.Add(30 * time.Minute)
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{constants.AUDIENCE_USER},
			Issuer:    constants.APP_USER_SERVICE,
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(tokenCreationTime),
		},
	)
	logger.Info().Msg("created login token")

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Info().Msg("signing token")
	signedToken, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger.Info().Msg("signed token")

	logger = logger.With().Str(log.KeyProcess, "creating session").Logger()
	logger.Info().Msg("creating session")
	c = logger.WithContext(c)
	loginSession, err := s.sessions.Login(c, user.ID, signedToken)
	if err != nil {
		err = fmt.Errorf("failed creating session with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Login{}, err
	}
	logger = logger.With().Str(log.KeySessionID, loginSession.ID.String()).Logger()
	logger.Info().Msg("created session")

	return response.Login{
		User:      response.NewUser(user),
		SessionId: loginSession.ID,
		Token:     signedToken,
		ExpiresAt: loginSession.ExpiresAt,
	}, nil
}

func (s UserService) Logout(c context.Context, param request.Logout) error {
	c, span := otel.Tracer.Start(c, "UserService Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Logout").
		Str(log.KeySessionID, param.SessionId.String()).
		Str(log.KeyProcess, "deleting session").
		Logger()

	logger.Info().Msg("deleting session")
	c = logger.WithContext(c)
	err := s.sessions.Logout(c, param.SessionId)
	if err != nil {
		err = fmt.Errorf("failed deleting session with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("deleted session")

	return nil
}

func (s UserService) FindUserById(c context.Context, userId uuid.UUID) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService FindUserById")
	defer span.End()

	cacheKey := fmt.Sprintf(cache.KEY_USERS, userId.String())

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService FindUserById").
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyCacheKey, cacheKey).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding user in cache").Logger()
	logger.Info().Msg("finding user in cache")
	jsonCache, err := s.cache.Get(c, cacheKey).Result()
	if err != nil {
		logger.Info().Err(err).Msg("user not found in cache")

		logger = logger.With().Str(log.KeyProcess, "finding user in db").Logger()
		logger.Info().Msg("finding user in db")
		user, err := s.queries.FindUserById(c, userId)
		if err != nil {
			err = fmt.Errorf("failed finding user in db with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		logger.Info().Msg("found user in db")
		userResponse := response.NewUser(user)

		logger = logger.With().Str(log.KeyProcess, "inserting user to cache").Logger()
		logger.Info().Msg("inserting user to cache")
		marshaled, err := json.Marshal(userResponse)
		if err != nil {
			err = fmt.Errorf("failed marshaling user with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		err = s.cache.Set(c, cacheKey, marshaled, time.Hour).Err()
		if err != nil {
			err = fmt.Errorf("failed inserting user to cache with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.User{}, err
		}
		logger.Info().Msg("inserted user to cache")

		return userResponse, nil
	}
	logger.Info().Msg("found user in cache")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling cache").Logger()
	logger.Info().Msg("unmarshaling cache")
	user := response.User{}
	err = json.Unmarshal([]byte(jsonCache), &user)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling cache with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Msg("unmarshaled cache")

	return user, nil
}
