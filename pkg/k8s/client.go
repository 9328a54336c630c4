// Copyright (C) SKA Observatory.
// SPDX-License-Identifier: BSD-3-Clause

// Package k8s wraps the Kubernetes client for the tangoktl layer:
// listing namespaces, pods and services, running commands in pods and
// fetching logs. Its only Tango-specific job is mapping a namespace to
// the in-cluster DNS name of the Tango database service.
package k8s

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"os"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/remotecommand"

	"github.com/ska-telescope/ska-tangoctl-sub000/pkg/tango"
)

// Client is a thin wrapper around the Kubernetes API.
type Client struct {
	log       zerolog.Logger
	clientset kubernetes.Interface
	restCfg   *rest.Config
}

// NewClient connects using in-cluster configuration when available,
// otherwise the kubeconfig from KUBECONFIG or ~/.kube/config.
func NewClient(log zerolog.Logger) (*Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, fmt.Errorf("build kubernetes config: %w", err)
	}
	clientset, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}
	return &Client{log: log, clientset: clientset, restCfg: cfg}, nil
}

// NewClientWith wraps an existing clientset; tests pass a fake.
func NewClientWith(log zerolog.Logger, clientset kubernetes.Interface) *Client {
	return &Client{log: log, clientset: clientset}
}

func buildConfig() (*rest.Config, error) {
	cfg, err := rest.InClusterConfig()
	if err == nil {
		return cfg, nil
	}
	kubeconfig := os.Getenv("KUBECONFIG")
	if kubeconfig == "" {
		home, _ := os.UserHomeDir()
		kubeconfig = home + "/.kube/config"
	}
	return clientcmd.BuildConfigFromFlags("", kubeconfig)
}

// Namespaces lists namespace names, filtered by a full-match regular
// expression when pattern is not empty.
func (c *Client) Namespaces(ctx context.Context, pattern string) ([]string, error) {
	nsList, err := c.clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list namespaces: %w", err)
	}
	var re *regexp.Regexp
	if pattern != "" {
		if re, err = regexp.Compile("^(?:" + pattern + ")$"); err != nil {
			return nil, fmt.Errorf("namespace pattern %q: %w", pattern, err)
		}
	}
	var names []string
	for _, ns := range nsList.Items {
		if re != nil && !re.MatchString(ns.Name) {
			c.log.Debug().Str("namespace", ns.Name).Msg("Skip namespace")
			continue
		}
		names = append(names, ns.Name)
	}
	c.log.Info().Int("namespaces", len(names)).Msg("Found namespaces")
	return names, nil
}

// PodInfo is the request-scoped pod summary.
type PodInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	IP        string `json:"ip"`
	Phase     string `json:"phase"`
}

// Pods lists the pods of a namespace.
func (c *Client) Pods(ctx context.Context, namespace string) ([]PodInfo, error) {
	podList, err := c.clientset.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list pods in %s: %w", namespace, err)
	}
	pods := make([]PodInfo, 0, len(podList.Items))
	for _, pod := range podList.Items {
		ip := pod.Status.PodIP
		if ip == "" {
			ip = "---"
		}
		pods = append(pods, PodInfo{
			Name:      pod.Name,
			Namespace: pod.Namespace,
			IP:        ip,
			Phase:     string(pod.Status.Phase),
		})
	}
	return pods, nil
}

// ServiceInfo is the request-scoped service summary.
type ServiceInfo struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	Type      string `json:"type"`
	ClusterIP string `json:"cluster_ip"`
	Port      int32  `json:"port,omitempty"`
	Protocol  string `json:"protocol,omitempty"`
}

// Services lists the services of a namespace.
func (c *Client) Services(ctx context.Context, namespace string) ([]ServiceInfo, error) {
	svcList, err := c.clientset.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list services in %s: %w", namespace, err)
	}
	svcs := make([]ServiceInfo, 0, len(svcList.Items))
	for _, svc := range svcList.Items {
		info := ServiceInfo{
			Name:      svc.Name,
			Namespace: svc.Namespace,
			Type:      string(svc.Spec.Type),
			ClusterIP: svc.Spec.ClusterIP,
		}
		if len(svc.Spec.Ports) > 0 {
			info.Port = svc.Spec.Ports[0].Port
			info.Protocol = string(svc.Spec.Ports[0].Protocol)
		}
		svcs = append(svcs, info)
	}
	return svcs, nil
}

// PodLog fetches the log of one pod.
func (c *Client) PodLog(ctx context.Context, namespace, pod string) (string, error) {
	req := c.clientset.CoreV1().Pods(namespace).GetLogs(pod, &corev1.PodLogOptions{})
	data, err := req.DoRaw(ctx)
	if err != nil {
		return "", fmt.Errorf("read log of pod %s: %w", pod, err)
	}
	return string(data), nil
}

// PodDescription fetches the full pod object.
func (c *Client) PodDescription(ctx context.Context, namespace, pod string) (*corev1.Pod, error) {
	p, err := c.clientset.CoreV1().Pods(namespace).Get(ctx, pod, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("read pod %s: %w", pod, err)
	}
	return p, nil
}

// ExecPod runs a command inside a pod and returns the combined output.
func (c *Client) ExecPod(ctx context.Context, namespace, pod string, command []string) (string, error) {
	if c.restCfg == nil {
		return "", fmt.Errorf("exec in pod %s: no rest config", pod)
	}
	req := c.clientset.CoreV1().RESTClient().Post().
		Resource("pods").Name(pod).Namespace(namespace).SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Command: command,
			Stdout:  true,
			Stderr:  true,
		}, scheme.ParameterCodec)
	exec, err := remotecommand.NewSPDYExecutor(c.restCfg, "POST", req.URL())
	if err != nil {
		return "", fmt.Errorf("exec in pod %s: %w", pod, err)
	}
	var stdout, stderr bytes.Buffer
	err = exec.StreamWithContext(ctx, remotecommand.StreamOptions{Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		return "", fmt.Errorf("exec in pod %s: %w", pod, err)
	}
	return stdout.String() + stderr.String(), nil
}

// TangoEndpoint constructs the expected in-cluster DNS name of the
// Tango database service for a namespace. No discovery is performed; a
// wrong name surfaces as a connection failure when the database is
// opened.
func TangoEndpoint(namespace, databasedsName, clusterDomain string, port int) tango.Endpoint {
	return tango.Endpoint{
		Host: fmt.Sprintf("%s.%s.svc.%s", databasedsName, namespace, clusterDomain),
		Port: port,
	}
}

// CheckEndpoint probes an endpoint with a short TCP dial. Advisory
// only: callers display the result and proceed regardless.
func CheckEndpoint(ep tango.Endpoint, timeout time.Duration) error {
	conn, err := net.DialTimeout("tcp", ep.String(), timeout)
	if err != nil {
		return err
	}
	return conn.Close()
}
