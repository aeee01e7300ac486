package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cardcore/cardcore/internal/common"
	sc "github.com/cardcore/cardcore/internal/server/config"
	"github.com/cardcore/cardcore/internal/server/models"
	"github.com/cardcore/cardcore/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// cardPolicy strips markup down to the safe subset allowed in card text.
// Fronts and backs come from users and are rendered by every reader of a
// public stack, so they are sanitized on the way in, not the way out.
var cardPolicy = bluemonday.UGCPolicy()

// GetRandomStorageKey returns a date-partitioned object key for a card image.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("cards/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

// CardService covers card CRUD inside a stack plus presigned image upload
// and download URLs for card fronts.
type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewCardService(db *sql.DB, m repomanager.RepositoryManager, cfg *sc.Config) *CardService {
	return &CardService{db: db, repomanager: m, config: cfg}
}

func (s *CardService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *CardService) getPresignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *CardService) getPresignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// attachImageURL fills FrontImage with a presigned GET URL when the card
// has an image key. A presign failure hides the image rather than failing
// the read.
func (s *CardService) attachImageURL(ctx context.Context, card *models.Card) {
	if card.FrontImageKey == "" {
		return
	}
	if url, err := s.getPresignedGetURL(ctx, card.FrontImageKey); err == nil {
		card.FrontImage = url
	}
}

func (s *CardService) checkAccess(ctx context.Context, userID, stackID string, write bool) error {
	access, err := s.repomanager.Stacks(s.db).GetAccess(ctx, stackID, userID)
	if err != nil {
		return err
	}
	if write && !access.CanWrite() {
		return common.ErrorForbidden
	}
	if !write && !access.CanRead() {
		return common.ErrorForbidden
	}
	return nil
}

func (s *CardService) Create(ctx context.Context, userID, stackID, front, back string) (*models.Card, error) {
	front = strings.TrimSpace(cardPolicy.Sanitize(front))
	back = strings.TrimSpace(cardPolicy.Sanitize(back))
	if front == "" || back == "" {
		return nil, common.ErrorValidation
	}

	if err := s.checkAccess(ctx, userID, stackID, true); err != nil {
		return nil, err
	}

	card := &models.Card{StackID: stackID, Front: front, Back: back}
	return s.repomanager.Cards(s.db).Create(ctx, card)
}

func (s *CardService) List(ctx context.Context, userID, stackID string) ([]*models.Card, error) {
	if err := s.checkAccess(ctx, userID, stackID, false); err != nil {
		return nil, err
	}

	cards, err := s.repomanager.Cards(s.db).ListByStack(ctx, stackID)
	if err != nil {
		return nil, err
	}
	for _, card := range cards {
		s.attachImageURL(ctx, card)
	}
	return cards, nil
}

// Update edits card text. Cards are addressed by their own id; the stack
// is derived from the card for the access check.
func (s *CardService) Update(ctx context.Context, userID, cardID string, front, back *string) (*models.Card, error) {
	if front != nil {
		clean := strings.TrimSpace(cardPolicy.Sanitize(*front))
		if clean == "" {
			return nil, common.ErrorValidation
		}
		front = &clean
	}
	if back != nil {
		clean := strings.TrimSpace(cardPolicy.Sanitize(*back))
		if clean == "" {
			return nil, common.ErrorValidation
		}
		back = &clean
	}

	card, err := s.repomanager.Cards(s.db).GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := s.checkAccess(ctx, userID, card.StackID, true); err != nil {
		return nil, err
	}

	updated, err := s.repomanager.Cards(s.db).Update(ctx, card.ID, front, back)
	if err != nil {
		return nil, err
	}
	s.attachImageURL(ctx, updated)
	return updated, nil
}

func (s *CardService) Delete(ctx context.Context, userID, cardID string) error {
	card, err := s.repomanager.Cards(s.db).GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	if err := s.checkAccess(ctx, userID, card.StackID, true); err != nil {
		return err
	}

	return s.repomanager.Cards(s.db).Delete(ctx, card.ID)
}

// RequestImageUpload allocates a storage key for the card's front image,
// records it on the card, and returns the key with a presigned PUT URL the
// client uploads the image bytes to.
func (s *CardService) RequestImageUpload(ctx context.Context, userID, cardID string) (string, string, error) {
	card, err := s.repomanager.Cards(s.db).GetByID(ctx, cardID)
	if err != nil {
		return "", "", err
	}
	if err := s.checkAccess(ctx, userID, card.StackID, true); err != nil {
		return "", "", err
	}

	key := GetRandomStorageKey()
	url, err := s.getPresignedPutURL(ctx, key)
	if err != nil {
		return "", "", err
	}

	if err := s.repomanager.Cards(s.db).SetImageKey(ctx, card.ID, key); err != nil {
		return "", "", err
	}

	return key, url, nil
}
