// DRIFTDB, Distributed Analytics Database
// Copyright (C) 2024-2026 Driftdb Co., Ltd.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version. For any non-GPL usage of DriftDB,
// one or multiple Commercial Licenses authorized by Driftdb Co., Ltd.
// must be obtained first.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package storage

import (
	"bytes"
	"context"
	"io/ioutil"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/driftdb/preflight/config"
)

// ObjectStore is the capability the verification protocol runs against. The
// production implementation wraps the S3 API; tests substitute fakes.
type ObjectStore interface {
	Write(ctx context.Context, key string, data []byte) error
	Read(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	// List asks for at most max keys under prefix, purely to probe the
	// list permission.
	List(ctx context.Context, prefix string, max int64) error
}

type s3Store struct {
	s3     *s3.S3
	bucket string
	root   string
}

func newS3Store(conf config.StorageConfig) (ObjectStore, error) {
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if conf.Endpoint != "" {
		s3Config.Endpoint = aws.String(conf.Endpoint)
	}
	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, err
	}
	return &s3Store{
		s3:     s3.New(sess),
		bucket: conf.Bucket,
		root:   conf.Root,
	}, nil
}

// key prefixes an object key with the configured root.
func (s *s3Store) key(k string) string {
	if s.root == "" {
		return k
	}
	return path.Join(s.root, k)
}

func (s *s3Store) Write(ctx context.Context, key string, data []byte) error {
	_, err := s.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
		Body:   bytes.NewReader(data),
	})
	return err
}

func (s *s3Store) Read(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return ioutil.ReadAll(resp.Body)
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(key)),
	})
	return err
}

func (s *s3Store) List(ctx context.Context, prefix string, max int64) error {
	_, err := s.s3.ListObjectsV2WithContext(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.key(prefix)),
		MaxKeys: aws.Int64(max),
	})
	return err
}
