package domain

import (
	"fmt"
	"strings"
)

// ProductType is the kind of product the company ships. The UI offers the
// three named values but free text is accepted as well.
type ProductType string

const (
	ProductTypeApp  ProductType = "App"
	ProductTypeSaaS ProductType = "SaaS"
	ProductTypeNGO  ProductType = "NGO"
)

// MaxProductValues is the upper bound of the curated values list.
const MaxProductValues = 5

// BrandInputFacts is the user-supplied description of a company.
// It is the single source of truth for every prompt built downstream.
type BrandInputFacts struct {
	CompanyName    string      `json:"companyName"`
	ProductType    ProductType `json:"productType"`
	CompanyProfile string      `json:"companyProfile"`
	ProductValues  []string    `json:"productValues"`
	Customers      string      `json:"customers"`
}

// Validate checks the caller contract. A failure wraps ErrContractViolation;
// nothing is defaulted or repaired.
func (f BrandInputFacts) Validate() error {
	if strings.TrimSpace(f.CompanyName) == "" {
		return fmt.Errorf("%w: companyName is required", ErrContractViolation)
	}
	if len(f.ProductValues) == 0 {
		return fmt.Errorf("%w: productValues must contain at least one value", ErrContractViolation)
	}
	if len(f.ProductValues) > MaxProductValues {
		return fmt.Errorf("%w: productValues accepts at most %d values, got %d",
			ErrContractViolation, MaxProductValues, len(f.ProductValues))
	}
	for i, v := range f.ProductValues {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%w: productValues[%d] is empty", ErrContractViolation, i)
		}
	}
	return nil
}

// ValuesList renders the values the way prompts expect them: "Trust, Quality".
func (f BrandInputFacts) ValuesList() string {
	values := make([]string, 0, len(f.ProductValues))
	for _, v := range f.ProductValues {
		values = append(values, strings.TrimSpace(v))
	}
	return strings.Join(values, ", ")
}
