// Command normalizer-lambda runs the ingestion normalizer as an AWS
// Lambda behind S3 bucket notifications. The target bucket comes from
// the S3_TARGET_BUCKET environment variable; the source bucket is named
// by each event record.
package main

import (
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pilosa/orderlake/aws/s3"
	"github.com/pilosa/orderlake/normalize"
)

func main() {
	targetName := os.Getenv("S3_TARGET_BUCKET")
	if targetName == "" {
		log.Fatal("S3_TARGET_BUCKET must be set")
	}
	target, err := s3.NewBucket(targetName, s3.OptRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("opening target bucket: %v", err)
	}
	n := normalize.NewNormalizer(target, normalize.OptRegion(os.Getenv("AWS_REGION")))
	lambda.Start(n.HandleEvent)
}
