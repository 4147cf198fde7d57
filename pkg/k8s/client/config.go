// Copyright (c) 2024, 2025, Oracle and/or its affiliates.
// Licensed under the Universal Permissive License v 1.0 as shown at https://oss.oracle.com/licenses/upl.

package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// EnvVarKubeConfig Name of Environment Variable for KUBECONFIG
const EnvVarKubeConfig = "KUBECONFIG"

// EnvVarTestKubeConfig Name of Environment Variable for test KUBECONFIG
const EnvVarTestKubeConfig = "TEST_KUBECONFIG"

const APIServerBurst = 150
const APIServerQPS = 100

// fakeClient is for unit testing
var fakeClient kubernetes.Interface

// SetFakeClient for unit tests
func SetFakeClient(client kubernetes.Interface) {
	fakeClient = client
}

// ClearFakeClient for unit tests
func ClearFakeClient() {
	fakeClient = nil
}

// sanitizePath converts the input path to an absolute path
// and check if the file exists.  If it does not exist, an error
// is returned.  The second boolean argument is returned unchanged
// and exists only to match the return signature of GetKubeConfigLocation.
func sanitizePath(path string, echo bool) (string, bool, error) {
	log.Debugf("Sanitizing %s", path)
	path, err := filepath.Abs(path)
	if err != nil {
		return path, echo, err
	}

	_, err = os.Stat(path)
	if err != nil {
		return path, echo, err
	}

	return path, echo, nil
}

// GetKubeConfigLocation Helper function to obtain the default kubeConfig location
func GetKubeConfigLocation(kubeconfigPath string) (string, bool, error) {
	if kubeconfigPath != "" {
		return sanitizePath(kubeconfigPath, false)
	}

	if testKubeConfig := os.Getenv(EnvVarTestKubeConfig); len(testKubeConfig) > 0 {
		path, echo, err := sanitizePath(testKubeConfig, false)
		if err != nil {
			err = fmt.Errorf("failed to access the kubeconfig set by the environment variable %s: %w", EnvVarTestKubeConfig, err)
		}
		return path, echo, err
	}

	if kubeConfig := os.Getenv(EnvVarKubeConfig); len(kubeConfig) > 0 {
		path, echo, err := sanitizePath(kubeConfig, false)
		if err != nil {
			err = fmt.Errorf("failed to access the kubeconfig set by the environment variable %s: %w", EnvVarKubeConfig, err)
		}
		return path, echo, err
	}

	if home := homedir.HomeDir(); home != "" {
		return sanitizePath(filepath.Join(home, ".kube", "config"), true)
	}

	return "", true, errors.New("unable to find kubeconfig")

}

// GetKubeConfig returns a rest.Config built from the kubeconfig at the
// given path.  The credentials written by the Azure CLI carry their own
// certificate authority, so the TLS settings are left alone.
func GetKubeConfig(kubeconfigPath string) (*rest.Config, error) {
	config, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, err
	}

	setConfigQPSBurst(config)
	return config, nil
}

func setConfigQPSBurst(config *rest.Config) {
	config.Burst = APIServerBurst
	config.QPS = APIServerQPS
}

// CurrentContext returns the context the kubeconfig currently points
// at.
func CurrentContext(kubeconfigPath string) (string, error) {
	location, _, err := GetKubeConfigLocation(kubeconfigPath)
	if err != nil {
		return "", err
	}

	kubeconfig, err := clientcmd.LoadFromFile(location)
	if err != nil {
		return "", err
	}
	if kubeconfig.CurrentContext == "" {
		return "", fmt.Errorf("kubeconfig %s has no current context", location)
	}
	return kubeconfig.CurrentContext, nil
}
