// Package model defines the in-memory representation of a service's API
// description: its metadata, operations and data-type shapes. A ServiceModel
// is built once from a raw JSON model document and is immutable afterwards;
// the generated client owns it for its whole lifetime.
//
// # Model Documents
//
// A model document has three top-level sections:
//
//	{
//	  "metadata": {
//	    "apiVersion": "2014-01-01",
//	    "endpointPrefix": "myservice",
//	    "signatureVersion": "v4",
//	    "protocol": "query"
//	  },
//	  "operations": {
//	    "TestOperation": {
//	      "name": "TestOperation",
//	      "http": {"method": "POST", "requestUri": "/"},
//	      "input": {"shape": "TestOperationRequest"}
//	    }
//	  },
//	  "shapes": {
//	    "TestOperationRequest": {
//	      "type": "structure",
//	      "required": ["Foo"],
//	      "members": {"Foo": {"shape": "StringType"}}
//	    },
//	    "StringType": {"type": "string"}
//	  }
//	}
//
// Shapes reference each other by name through the owning model's shape table;
// no shape owns another shape.
//
// # Service Name vs Endpoint Prefix
//
// The logical service name passed to New is deliberately distinct from the
// metadata's endpointPrefix. Several logical services can share one wire
// prefix, so all auxiliary lookups (pagination, waiters) key off the logical
// name, never the prefix. ServiceName reports the logical name.
//
// # Load-Time Validation
//
// New verifies that every operation input/output reference, structure member,
// list member and map key/value resolves to a declared shape, and that every
// name listed in a structure's "required" set exists among its members. A
// violation is a malformed model and fails construction with
// InvalidModelError; it is never surfaced per call.
package model
