/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package controller

import (
	"net/url"
	"os"
	"strings"
	"time"
)

// Values of APIMFunctionAPI status.phase.
const (
	phaseError   = "Error"
	phaseCreated = "Created"
	phasePartial = "PartiallyCreated" // API deployed, some operations failed
)

const errMsgFailedToGetAzureToken = "Failed to get Azure token"

const serviceAccountNamespaceFile = "/var/run/secrets/kubernetes.io/serviceaccount/namespace"

// Requeue intervals.
const (
	tokenRetryInterval  = 30 * time.Second
	deployRetryInterval = 60 * time.Second
)

// getOperatorNamespace returns the namespace APIMService resources are looked up in:
// the service account namespace, then OPERATOR_NAMESPACE, then "default".
func getOperatorNamespace() string {
	if nsBytes, err := os.ReadFile(serviceAccountNamespaceFile); err == nil {
		return strings.TrimSpace(string(nsBytes))
	}
	if ns := os.Getenv("OPERATOR_NAMESPACE"); ns != "" {
		return ns
	}
	return "default"
}

// gatewayHost returns the host part of an APIM gateway URL, or the input when it does not parse.
func gatewayHost(gatewayURL string) string {
	u, err := url.Parse(gatewayURL)
	if err != nil || u.Host == "" {
		return gatewayURL
	}
	return u.Host
}
