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
	"strings"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
)

type errorClass int

const (
	classUnknown errorClass = iota
	classAccessDenied
	classNoSuchBucket
	classNoSuchKey
	classInvalidAccessKey
	classInvalidSecret
)

// classifyError maps a storage error onto a diagnosis. Structured SDK error
// codes are authoritative; matching on error text is the documented fallback
// for stores whose client does not surface a code.
func classifyError(err error) errorClass {
	if err == nil {
		return classUnknown
	}

	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "AccessDenied":
			return classAccessDenied
		case s3.ErrCodeNoSuchBucket:
			return classNoSuchBucket
		case s3.ErrCodeNoSuchKey, "NotFound":
			return classNoSuchKey
		case "InvalidAccessKeyId":
			return classInvalidAccessKey
		case "SignatureDoesNotMatch":
			return classInvalidSecret
		}
	}

	msg := err.Error()
	switch {
	case containsFold(msg, "access denied") || strings.Contains(msg, "AccessDenied"):
		return classAccessDenied
	case strings.Contains(msg, "NoSuchBucket") || containsFold(msg, "bucket does not exist"):
		return classNoSuchBucket
	case strings.Contains(msg, "NoSuchKey") || containsFold(msg, "key does not exist"):
		return classNoSuchKey
	case strings.Contains(msg, "InvalidAccessKeyId"):
		return classInvalidAccessKey
	case strings.Contains(msg, "SignatureDoesNotMatch"):
		return classInvalidSecret
	default:
		return classUnknown
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func isNotFound(err error) bool {
	return classifyError(err) == classNoSuchKey
}

func isAccessDenied(err error) bool {
	return classifyError(err) == classAccessDenied
}
