package validated_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestValidated(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Validated Integration Suite")
}
