package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/silinternational/intake-api/api"
	"github.com/silinternational/intake-api/domain"
	"github.com/silinternational/intake-api/photos"
)

type ObjectUrl struct {
	Url        string
	Expiration time.Time
}

type awsConfig struct {
	awsAccessKeyID     string
	awsSecretAccessKey string
	awsEndpoint        string
	awsRegion          string
	awsS3Bucket        string
	awsS3ACL           string
	awsDisableSSL      bool
	getPresignedUrl    bool
	urlLifespan        time.Duration
}

func getS3ConfigFromEnv() awsConfig {
	var a awsConfig
	a.awsAccessKeyID = domain.Env.AwsAccessKeyID
	a.awsSecretAccessKey = domain.Env.AwsSecretAccessKey
	a.awsEndpoint = domain.Env.AwsS3Endpoint
	a.awsRegion = domain.Env.AwsRegion
	a.awsS3Bucket = domain.Env.AwsS3Bucket
	a.awsS3ACL = domain.Env.AwsS3ACL
	a.awsDisableSSL = domain.Env.AwsS3DisableSSL
	a.urlLifespan = time.Duration(domain.Env.AwsS3URLLifeMinutes) * time.Minute

	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		a.awsAccessKeyID = "abc123"
		a.awsSecretAccessKey = "abcd1234"
	}

	// a non-empty endpoint means minIO is in use, which doesn't support the S3 object URL scheme
	if !strings.HasPrefix(a.awsS3ACL, "public") || len(a.awsEndpoint) > 0 {
		a.getPresignedUrl = true
	}
	return a
}

func createS3Service(config awsConfig) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.awsAccessKeyID, config.awsSecretAccessKey, ""),
		Endpoint:         aws.String(config.awsEndpoint),
		Region:           aws.String(config.awsRegion),
		DisableSSL:       aws.Bool(config.awsDisableSSL),
		S3ForcePathStyle: aws.Bool(len(config.awsEndpoint) > 0),
	})
	svc := s3.New(sess)

	return svc, err
}

func getObjectURL(config awsConfig, svc s3iface.S3API, key string) (ObjectUrl, error) {
	var objectUrl ObjectUrl

	if !config.getPresignedUrl {
		objectUrl.Url = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", config.awsS3Bucket, url.PathEscape(key))
		objectUrl.Expiration = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
		return objectUrl, nil
	}

	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(config.awsS3Bucket),
		Key:    aws.String(key),
	})

	if newUrl, err := req.Presign(config.urlLifespan); err == nil {
		objectUrl.Url = newUrl
		// return a time slightly before the actual url expiration to account for delays
		objectUrl.Expiration = time.Now().Add(config.urlLifespan - time.Minute)
	} else {
		return objectUrl, err
	}

	return objectUrl, nil
}

// PhotoStore keeps marker photos in an AWS S3 bucket or compatible storage. It implements photos.Store.
type PhotoStore struct {
	config awsConfig
	svc    s3iface.S3API
}

// NewPhotoStore creates a PhotoStore configured from the environment
func NewPhotoStore() (*PhotoStore, error) {
	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return nil, err
	}
	return &PhotoStore{config: config, svc: svc}, nil
}

// Upload saves the photo under the group key and returns its URL and object key
func (p *PhotoStore) Upload(ctx context.Context, f photos.File, groupKey string) (api.PhotoItem, error) {
	if groupKey == "" {
		return api.PhotoItem{}, api.NewAppError(errors.New("group key is empty"), api.ErrorMissingGroupKey, api.CategoryUser)
	}

	key := objectKey(groupKey, f.Name)

	acl := ""
	if !p.config.getPresignedUrl {
		acl = p.config.awsS3ACL
	}
	if _, err := p.svc.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.config.awsS3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(f.ContentType),
		ACL:         aws.String(acl),
		Body:        bytes.NewReader(f.Content),
	}); err != nil {
		err = fmt.Errorf("error storing photo %s: %w", key, err)
		return api.PhotoItem{}, api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryStorage)
	}

	objectUrl, err := getObjectURL(p.config, p.svc, key)
	if err != nil {
		err = fmt.Errorf("error getting url of photo %s: %w", key, err)
		return api.PhotoItem{}, api.NewAppError(err, api.ErrorUnableToStoreFile, api.CategoryStorage)
	}

	return api.PhotoItem{URL: objectUrl.Url, Path: key}, nil
}

// Delete removes a photo by object key
func (p *PhotoStore) Delete(ctx context.Context, path string) error {
	if path == "" {
		return errors.New("photo path is empty")
	}

	if _, err := p.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.config.awsS3Bucket),
		Key:    aws.String(path),
	}); err != nil {
		return fmt.Errorf("error removing photo %s: %w", path, err)
	}
	return nil
}

// objectKey builds a unique key for a photo, keeping a cleaned-up version of the original file name
func objectKey(groupKey, name string) string {
	base := filepath.Base(name)
	if base == "." || base == "/" {
		base = ""
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, base)

	id := domain.GetUUID().String()
	if base == "" {
		return groupKey + "/" + id
	}
	return groupKey + "/" + id + "-" + base
}

// CreateS3Bucket creates an S3 bucket with a name defined by an environment variable. If the bucket already
// exists, it will not return an error.
func CreateS3Bucket() error {
	env := domain.Env.GoEnv
	if env != domain.EnvTest && env != domain.EnvDevelopment {
		return errors.New("CreateS3Bucket should only be used in test and development")
	}

	config := getS3ConfigFromEnv()

	svc, err := createS3Service(config)
	if err != nil {
		return err
	}

	c := &s3.CreateBucketInput{Bucket: aws.String(config.awsS3Bucket)}
	if _, err := svc.CreateBucket(c); err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists:
			case s3.ErrCodeBucketAlreadyOwnedByYou:
			default:
				return err
			}
		}
	}
	return nil
}
