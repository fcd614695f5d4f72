// stress_tool 并发下单压测：同一用户用全部积分并发下单，
// 检查积分不会被超扣（预期只有一单成功）
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

var (
	baseURL    = flag.String("url", "http://localhost:8080", "服务地址")
	foodID     = flag.String("food", "", "下单菜品 ID")
	warmup     = flag.Int("warmup", 5, "预热订单数，用于积累积分")
	concurrent = flag.Int("n", 200, "并发下单数")
)

var httpClient *http.Client

func init() {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 2000
	t.MaxIdleConnsPerHost = 2000
	t.MaxConnsPerHost = 2000
	httpClient = &http.Client{
		Transport: t,
		Timeout:   10 * time.Second,
	}
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func call(method, path, token string, payload interface{}) (int, envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, envelope{}, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, *baseURL+path, body)
	if err != nil {
		return 0, envelope{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, envelope{}, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return resp.StatusCode, envelope{}, err
	}
	return resp.StatusCode, env, nil
}

func register() (string, error) {
	email := fmt.Sprintf("stress-%d@yumzy.test", time.Now().UnixNano())
	status, env, err := call(http.MethodPost, "/api/auth/user/register", "", map[string]string{
		"fullName": "Stress Tester",
		"email":    email,
		"password": "stress-password",
	})
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("register: %d %s", status, env.Message)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return "", err
	}
	return data.Token, nil
}

func orderPayload(points int) map[string]interface{} {
	return map[string]interface{}{
		"foodId":            *foodID,
		"quantity":          1,
		"paymentOption":     "COD",
		"loyaltyPointsUsed": points,
		"address": map[string]string{
			"street":  "1 Stress Lane",
			"city":    "Bengaluru",
			"state":   "KA",
			"pincode": "560001",
			"phone":   "9999999999",
		},
	}
}

func balance(token string) (int, error) {
	_, env, err := call(http.MethodGet, "/api/orders/loyalty", token, nil)
	if err != nil {
		return 0, err
	}
	var data struct {
		LoyaltyPoints int `json:"loyaltyPoints"`
	}
	err = json.Unmarshal(env.Data, &data)
	return data.LoyaltyPoints, err
}

func main() {
	flag.Parse()
	if *foodID == "" {
		fmt.Println("请通过 -food 指定菜品 ID")
		return
	}

	token, err := register()
	if err != nil {
		fmt.Printf("注册失败: %v\n", err)
		return
	}

	// 1. 预热下单，积累积分
	for i := 0; i < *warmup; i++ {
		if status, env, err := call(http.MethodPost, "/api/orders", token, orderPayload(0)); err != nil || status != http.StatusCreated {
			fmt.Printf("预热下单失败: %d %s %v\n", status, env.Message, err)
			return
		}
	}
	points, err := balance(token)
	if err != nil || points == 0 {
		fmt.Printf("积分不足，无法压测 (积分: %d, err: %v)\n", points, err)
		return
	}

	fmt.Printf("开始压测：%d 个请求并发使用全部 %d 积分下单...\n", *concurrent, points)

	// 2. 并发下单，每单都尝试用掉全部积分
	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		successCount int
		failCount    int
	)
	start := time.Now()

	for i := 0; i < *concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, _, err := call(http.MethodPost, "/api/orders", token, orderPayload(points))
			mu.Lock()
			defer mu.Unlock()
			if err == nil && status == http.StatusCreated {
				successCount++
			} else {
				failCount++
			}
		}()
	}

	wg.Wait()
	duration := time.Since(start)
	final, _ := balance(token)

	fmt.Println("--------------------------------------------------")
	fmt.Printf("压测结束，耗时: %v\n", duration)
	fmt.Printf("总请求数: %d\n", *concurrent)
	fmt.Printf("QPS: %.2f\n", float64(*concurrent)/duration.Seconds())
	fmt.Printf("下单成功: %d (预期: 1)\n", successCount)
	fmt.Printf("下单失败: %d\n", failCount)
	fmt.Printf("剩余积分: %d (不应为负)\n", final)
	fmt.Println("--------------------------------------------------")
}
