// SPDX-FileCopyrightText: 2022 SoftIron Limited <info@softiron.com>
// SPDX-License-Identifier: GNU General Public License v2.0 only WITH Classpath exception 2.0

package storage

import (
	"bytes"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/softiron/cworker/internal/logger"
)

// S3Connection talks to an S3-compatible object store (AWS S3, or a
// gateway such as Ceph's RadosGateway).
type S3Connection struct {
	gateway string
	config  Config
	bucket  string
	client  *s3.S3
}

// NewS3Connection builds an S3Connection to the gateway at target. The
// bucket entry is read from config here; the access_key, secret_key,
// and port entries are read at Connect time.
func NewS3Connection(target string, config Config) (*S3Connection, error) {
	return &S3Connection{
		gateway: target,
		config:  config,
		bucket:  config["bucket"],
	}, nil
}

func (c *S3Connection) Target() string {
	return c.gateway
}

func (c *S3Connection) Connect() error {
	accessKey := c.config["access_key"]
	secretKey := c.config["secret_key"]
	port := c.config["port"]

	if accessKey == "" {
		return fmt.Errorf("storage: access_key not provided")
	}
	if secretKey == "" {
		return fmt.Errorf("storage: secret_key not provided")
	}

	creds := credentials.NewStaticCredentials(accessKey, secretKey, "")
	endpoint := fmt.Sprintf("%v:%v", c.gateway, port)

	awsConfig := aws.NewConfig().
		WithRegion("us-east-1").
		WithDisableSSL(true).
		WithEndpoint(endpoint).
		WithS3ForcePathStyle(true).
		WithCredentials(creds)

	sess, err := session.NewSession()
	if err != nil {
		return err
	}

	logger.Infof("storage: creating S3 connection to %v\n", endpoint)
	c.client = s3.New(sess, awsConfig)

	return c.createBucketIfMissing()
}

func (c *S3Connection) Close() error {
	// S3 is stateless; there is nothing to tear down per-connection.
	return nil
}

func (c *S3Connection) createBucketIfMissing() error {
	exists, err := c.bucketExists()
	if err != nil {
		return err
	}
	if exists {
		logger.Infof("storage: bucket already exists: %v\n", c.bucket)
		return nil
	}

	logger.Infof("storage: creating bucket %v on %v\n", c.bucket, c.gateway)
	_, err = c.client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(c.bucket)})
	return err
}

// bucketExists uses HeadBucket rather than relying on CreateBucket's
// documented already-exists error, because not every S3-compatible
// gateway implements that part of the protocol correctly.
func (c *S3Connection) bucketExists() (bool, error) {
	_, err := c.client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err == nil {
		return true, nil
	}

	if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchBucket {
		return false, nil
	}

	return false, err
}

func (c *S3Connection) PutObject(key string, contents []byte) error {
	_, err := c.client.PutObject(&s3.PutObjectInput{
		Body:   bytes.NewReader(contents),
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (c *S3Connection) GetObject(key string) ([]byte, error) {
	resp, err := c.client.GetObject(&s3.GetObjectInput{Bucket: aws.String(c.bucket), Key: aws.String(key)})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *S3Connection) DeleteObject(key string) error {
	_, err := c.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}
